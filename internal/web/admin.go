package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Admin() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Swipe Judge — Admin</title>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Admin</span>
        <h1>Content editor</h1>
        <p><a href="/">Back to games</a></p>
      </header>

      <section class="panel">
        <h2>Create a game</h2>
        <form id="gameForm">
          <input name="name" placeholder="Name" required/>
          <input name="question" placeholder="Question shown to participants" required/>
          <input name="minPlayers" type="number" min="1" value="1"/>
          <label><input type="checkbox" name="solo" checked/> Solo</label>
          <label><input type="checkbox" name="group"/> Group</label>
          <label><input type="checkbox" name="useTimer"/> Timer</label>
          <input name="timer" type="number" min="0" max="120" value="0"/>
          <button type="submit">Create</button>
        </form>
        <div id="gameResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>Add content</h2>
        <form id="contentForm">
          <input name="gameId" type="number" min="1" placeholder="Game id" required/>
          <select name="type">
            <option value="image">Image</option>
            <option value="text">Text</option>
            <option value="video">Video</option>
          </select>
          <input name="url" placeholder="URL (image/video)"/>
          <input name="text" placeholder="Text (text content)"/>
          <button type="submit">Add</button>
        </form>
        <div id="contentResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>Games</h2>
        <ul id="adminGameList"></ul>
      </section>
    </main>

    <script>
      const gameForm = document.getElementById("gameForm");
      const gameResult = document.getElementById("gameResult");
      const contentForm = document.getElementById("contentForm");
      const contentResult = document.getElementById("contentResult");
      const adminList = document.getElementById("adminGameList");

      async function refreshGames() {
        const res = await fetch("/api/games");
        if (!res.ok) return;
        const games = await res.json();
        adminList.innerHTML = "";
        for (const game of games) {
          const item = document.createElement("li");
          item.textContent = "#" + game.id + " " + game.name + " ";
          const del = document.createElement("button");
          del.textContent = "Delete";
          del.addEventListener("click", async () => {
            await fetch("/api/games/" + game.id, { method: "DELETE" });
            refreshGames();
          });
          item.appendChild(del);
          adminList.appendChild(item);
        }
      }

      gameForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        const data = new FormData(gameForm);
        const modes = [];
        if (data.get("solo")) modes.push("solo");
        if (data.get("group")) modes.push("group");
        const res = await fetch("/api/games", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({
            name: data.get("name"),
            question: data.get("question"),
            minPlayers: parseInt(data.get("minPlayers"), 10) || 1,
            modes: modes,
            timer: parseInt(data.get("timer"), 10) || 0,
            useTimer: Boolean(data.get("useTimer")),
          }),
        });
        const body = await res.json();
        gameResult.textContent = res.ok ? "Created game #" + body.id : body.error;
        refreshGames();
      });

      contentForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        const data = new FormData(contentForm);
        const payload = { type: data.get("type") };
        if (payload.type === "text") {
          payload.text = data.get("text");
        } else {
          payload.url = data.get("url");
        }
        const res = await fetch("/api/games/" + data.get("gameId") + "/content", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify(payload),
        });
        const body = await res.json();
        contentResult.textContent = res.ok ? "Added content #" + body.id : body.error;
      });

      refreshGames();
    </script>
  </body>
</html>
`)
		return err
	})
}
