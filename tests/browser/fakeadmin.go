package browser

import (
	"net/http"
)

// Fake admin console. Route shapes follow the real console: a first-run
// visit redirects to a signup_email route, account creation leads into the
// create-team wizard, and the home page renders incoming posts.

func (env *TestEnv) registerAdminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /admin/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/" {
			http.NotFound(w, r)
			return
		}
		env.mu.Lock()
		initialized := env.initialized
		env.mu.Unlock()
		if !initialized {
			http.Redirect(w, r, "/admin/signup_email", http.StatusFound)
			return
		}
		writeHTML(w, adminHomeHTML)
	})

	mux.HandleFunc("GET /admin/signup_email", func(w http.ResponseWriter, r *http.Request) {
		writeHTML(w, adminSignupHTML)
	})

	mux.HandleFunc("POST /admin/signup", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		env.mu.Lock()
		env.adminEmail = r.PostFormValue("email")
		env.adminUsername = r.PostFormValue("username")
		env.mu.Unlock()
		http.Redirect(w, r, "/admin/team", http.StatusSeeOther)
	})

	mux.HandleFunc("GET /admin/team", func(w http.ResponseWriter, r *http.Request) {
		writeHTML(w, adminTeamLinkHTML)
	})

	mux.HandleFunc("GET /admin/team/name", func(w http.ResponseWriter, r *http.Request) {
		writeHTML(w, adminTeamNameHTML)
	})

	mux.HandleFunc("POST /admin/team/name", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		env.mu.Lock()
		env.teamName = r.PostFormValue("team_name")
		env.mu.Unlock()
		http.Redirect(w, r, "/admin/team/url", http.StatusSeeOther)
	})

	mux.HandleFunc("GET /admin/team/url", func(w http.ResponseWriter, r *http.Request) {
		writeHTML(w, adminTeamURLHTML)
	})

	mux.HandleFunc("POST /admin/team/url", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		env.mu.Lock()
		env.teamSlug = r.PostFormValue("team_url")
		env.mu.Unlock()
		http.Redirect(w, r, "/admin/team/finish", http.StatusSeeOther)
	})

	mux.HandleFunc("GET /admin/team/finish", func(w http.ResponseWriter, r *http.Request) {
		writeHTML(w, adminFinishHTML)
	})

	mux.HandleFunc("POST /admin/team/finish", func(w http.ResponseWriter, r *http.Request) {
		env.mu.Lock()
		env.initialized = true
		env.mu.Unlock()
		http.Redirect(w, r, "/admin/", http.StatusSeeOther)
	})
}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

const adminSignupHTML = `<!DOCTYPE html>
<html><head><title>Create Account - Admin Console</title></head><body>
<h1>Let's get started</h1>
<form method="post" action="/admin/signup">
  <input id="input_email" pluginid="email" name="email" type="email">
  <input id="input_name" pluginid="username" name="username" type="text">
  <input id="input_password-input" pluginid="password" name="password" type="password">
  <button id="create_account" type="submit">Create Account</button>
</form>
</body></html>`

const adminTeamLinkHTML = `<!DOCTYPE html>
<html><head><title>Teams - Admin Console</title></head><body>
<h1>Welcome</h1>
<a id="create_team" href="/admin/team/name">Create a team</a>
</body></html>`

const adminTeamNameHTML = `<!DOCTYPE html>
<html><head><title>Team Name - Admin Console</title></head><body>
<form method="post" action="/admin/team/name">
  <input id="team_name" name="team_name" type="text">
  <button type="submit">Next</button>
</form>
</body></html>`

const adminTeamURLHTML = `<!DOCTYPE html>
<html><head><title>Team URL - Admin Console</title></head><body>
<form method="post" action="/admin/team/url">
  <input id="team_url" name="team_url" type="text">
  <button type="submit">Next</button>
</form>
</body></html>`

const adminFinishHTML = `<!DOCTYPE html>
<html><head><title>Done - Admin Console</title></head><body>
<form method="post" action="/admin/team/finish">
  <button type="submit">Finish</button>
</form>
</body></html>`

// The home page doubles as the sign-in surface (email input present, as on
// the real console when a fresh browser context is not logged in) and renders
// bridged posts by polling the bridge.
const adminHomeHTML = `<!DOCTYPE html>
<html><head><title>Town Square - Admin Console</title></head><body>
<h1>Town Square</h1>
<input id="input_email" type="email" placeholder="Email">
<div id="post-list"></div>
<script>
async function poll() {
  try {
    const resp = await fetch('/bridge/messages');
    const msgs = await resp.json();
    const list = document.getElementById('post-list');
    list.innerHTML = '';
    for (const m of msgs) {
      const post = document.createElement('div');
      post.className = 'post';
      post.textContent = m;
      list.appendChild(post);
    }
  } catch (e) {}
}
setInterval(poll, 250);
poll();
</script>
</body></html>`
