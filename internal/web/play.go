package web

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Play renders the swipeable-card session for one game. The swipe state
// machine mirrors internal/session: one judgment per presented item, a
// commit lock during the capture display, and a cancellable countdown.
func Play(gameID string, decisionDisplayMillis int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Swipe Judge — Play</title>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Swipe Judge</span>
        <h1 id="question">Loading...</h1>
        <p><a href="/">All games</a></p>
      </header>

      <section id="waiting" class="panel" hidden>
        <h2>Waiting for participants</h2>
        <p id="waitingStatus"></p>
        <button id="joinBtn">Join</button>
      </section>

      <section id="stage" class="panel" hidden>
        <div id="card" class="card"></div>
        <p id="countdown"></p>
        <button id="disagreeBtn">&#10060; Disagree</button>
        <button id="agreeBtn">&#9989; Agree</button>
      </section>

      <section id="results" class="panel" hidden>
        <h2>Results</h2>
        <ul id="resultList"></ul>
      </section>
    </main>

    <script>
      const GAME_ID = "`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, gameID); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `";
      const CAPTURE_MS = `); err != nil {
			return err
		}
		if _, err := io.WriteString(w, strconv.Itoa(decisionDisplayMillis)); err != nil {
			return err
		}
		_, err := io.WriteString(w, `;
      const SWIPE_THRESHOLD = 120;

      let game = null;
      let items = [];
      let index = 0;
      let committing = false;
      let countdownId = null;
      let participantId = null;
      let socket = null;

      const question = document.getElementById("question");
      const waiting = document.getElementById("waiting");
      const waitingStatus = document.getElementById("waitingStatus");
      const stage = document.getElementById("stage");
      const card = document.getElementById("card");
      const countdown = document.getElementById("countdown");
      const results = document.getElementById("results");
      const resultList = document.getElementById("resultList");

      function newParticipantId() {
        if (window.crypto && crypto.randomUUID) return crypto.randomUUID();
        return "p-" + Math.random().toString(36).slice(2, 10);
      }

      async function boot() {
        const gameRes = await fetch("/api/games/" + GAME_ID);
        if (!gameRes.ok) {
          question.textContent = "Game not found";
          return;
        }
        game = await gameRes.json();
        question.textContent = game.question;
        const contentRes = await fetch("/api/games/" + GAME_ID + "/content");
        items = contentRes.ok ? await contentRes.json() : [];
        participantId = newParticipantId();
        connectSocket();
        if (game.modes.includes("group") && !game.modes.includes("solo")) {
          enterWaitingRoom();
        } else {
          presentItem(0);
        }
      }

      function connectSocket() {
        const proto = location.protocol === "https:" ? "wss://" : "ws://";
        socket = new WebSocket(proto + location.host + "/ws/games/" + GAME_ID);
        socket.onmessage = (event) => {
          const msg = JSON.parse(event.data);
          if (msg.type === "participants" && waiting.hidden === false) {
            updateWaiting(msg.joined, msg.min_players, msg.ready);
          }
          if (msg.type === "statistics" && results.hidden === false) {
            renderResults(msg.statistics);
          }
        };
      }

      function enterWaitingRoom() {
        waiting.hidden = false;
        updateWaiting(0, game.minPlayers, false);
        document.getElementById("joinBtn").addEventListener("click", async () => {
          const res = await fetch("/api/games/" + GAME_ID + "/participants", { method: "POST" });
          if (!res.ok) return;
          const body = await res.json();
          participantId = body.participant_id;
          updateWaiting(body.joined, body.min_players, body.ready);
        });
      }

      function updateWaiting(joined, minPlayers, ready) {
        waitingStatus.textContent = joined + " of " + minPlayers + " participants joined";
        if (ready) {
          waiting.hidden = true;
          presentItem(0);
        }
      }

      function presentItem(i) {
        index = i;
        committing = false;
        if (items.length === 0 || i >= items.length) {
          showResults();
          return;
        }
        stage.hidden = false;
        renderCard(items[i]);
        startCountdown();
      }

      function renderCard(item) {
        card.innerHTML = "";
        card.style.transform = "";
        if (item.type === "image") {
          const img = document.createElement("img");
          img.src = item.url;
          card.appendChild(img);
        } else if (item.type === "video") {
          const video = document.createElement("video");
          video.src = item.url;
          video.controls = true;
          card.appendChild(video);
        } else {
          const p = document.createElement("p");
          p.textContent = item.text;
          card.appendChild(p);
        }
      }

      function startCountdown() {
        stopCountdown();
        if (!game.useTimer || game.timer <= 0) {
          countdown.textContent = "";
          return;
        }
        let left = game.timer;
        countdown.textContent = left + "s";
        countdownId = setInterval(() => {
          left -= 1;
          countdown.textContent = left + "s";
          if (left <= 0) {
            commit("time_up");
          }
        }, 1000);
      }

      function stopCountdown() {
        if (countdownId !== null) {
          clearInterval(countdownId);
          countdownId = null;
        }
      }

      async function commit(outcome) {
        if (committing) return;
        committing = true;
        stopCountdown();
        const item = items[index];
        await fetch("/api/games/" + GAME_ID + "/decisions", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({
            contentId: item.id,
            outcome: outcome,
            participantId: participantId,
          }),
        });
        card.style.transform = outcome === "agree" ? "translateX(400px)" : "translateX(-400px)";
        setTimeout(() => presentItem(index + 1), CAPTURE_MS);
      }

      async function showResults() {
        stage.hidden = true;
        results.hidden = false;
        const res = await fetch("/api/games/" + GAME_ID + "/statistics");
        if (res.ok) renderResults(await res.json());
      }

      function renderResults(rows) {
        resultList.innerHTML = "";
        for (const row of rows) {
          const li = document.createElement("li");
          const label = row.type === "text" ? row.text : row.url;
          const consensus = row.total > 0
            ? Math.round(Math.max(row.agreements, row.disagreements) / row.total * 100)
            : 0;
          li.textContent = label + " — agree " + row.agreements + ", disagree " +
            row.disagreements + ", consensus " + consensus + "%";
          resultList.appendChild(li);
        }
      }

      let dragStartX = null;
      card.addEventListener("pointerdown", (event) => {
        if (committing) return;
        dragStartX = event.clientX;
        card.setPointerCapture(event.pointerId);
      });
      card.addEventListener("pointermove", (event) => {
        if (dragStartX === null || committing) return;
        card.style.transform = "translateX(" + (event.clientX - dragStartX) + "px)";
      });
      card.addEventListener("pointerup", (event) => {
        if (dragStartX === null || committing) return;
        const delta = event.clientX - dragStartX;
        dragStartX = null;
        if (delta > SWIPE_THRESHOLD) {
          commit("agree");
        } else if (delta < -SWIPE_THRESHOLD) {
          commit("disagree");
        } else {
          card.style.transform = "";
        }
      });

      document.getElementById("agreeBtn").addEventListener("click", () => commit("agree"));
      document.getElementById("disagreeBtn").addEventListener("click", () => commit("disagree"));

      boot();
    </script>
  </body>
</html>
`)
		return err
	})
}
