package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Swipe Judge</title>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Swipe Judge</span>
        <h1>Pick a game. Swipe your verdict.</h1>
        <p>Agree right, disagree left. Results update as decisions land.</p>
      </header>

      <section class="panel">
        <h2>Games</h2>
        <ul id="gameList"><li>Loading games...</li></ul>
      </section>

      <p><a href="/admin">Admin editor</a></p>
    </main>

    <script>
      const list = document.getElementById("gameList");

      async function loadGames() {
        const res = await fetch("/api/games");
        if (!res.ok) {
          list.innerHTML = "<li>Failed to load games.</li>";
          return;
        }
        const games = await res.json();
        if (games.length === 0) {
          list.innerHTML = "<li>No games yet. Create one in the admin editor.</li>";
          return;
        }
        list.innerHTML = "";
        for (const game of games) {
          const item = document.createElement("li");
          const link = document.createElement("a");
          link.href = "/play/" + game.id;
          link.textContent = game.name + " — " + game.question;
          item.appendChild(link);
          list.appendChild(item);
        }
      }

      loadGames();
    </script>
  </body>
</html>
`)
		return err
	})
}
