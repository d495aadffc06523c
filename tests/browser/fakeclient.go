package browser

import (
	"net/http"
)

// Fake federated client. The real client is a single-page app driven by
// div[role='button'] controls, so the fake stages its sections with a small
// script instead of server-side forms.

func (env *TestEnv) registerClientRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /client/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/client/" {
			http.NotFound(w, r)
			return
		}
		writeHTML(w, clientLandingHTML)
	})

	mux.HandleFunc("GET /client/register", func(w http.ResponseWriter, r *http.Request) {
		writeHTML(w, clientAppHTML)
	})

	mux.HandleFunc("POST /client/api/register", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username   string `json:"username"`
			Password   string `json:"password"`
			Homeserver string `json:"homeserver"`
		}
		if err := readJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if req.Username == "" || req.Password == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username and password required"})
			return
		}

		env.mu.Lock()
		defer env.mu.Unlock()
		if _, taken := env.registrations[req.Username]; taken {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username is taken"})
			return
		}
		env.registrations[req.Username] = registration{
			Password:   req.Password,
			Homeserver: req.Homeserver,
		}
		writeJSON(w, http.StatusOK, map[string]string{"user_id": "@" + req.Username + ":localhost"})
	})

	mux.HandleFunc("POST /client/api/startchat", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Target string `json:"target"`
		}
		if err := readJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		env.mu.Lock()
		env.chatTargets = append(env.chatTargets, req.Target)
		env.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"room_id": "!fake-room:localhost"})
	})

	// The homeserver the client is pointed at; only reachability matters.
	mux.HandleFunc("GET /homeserver", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"server": "fake"})
	})
}

const clientLandingHTML = `<!DOCTYPE html>
<html><head><title>Federated Client</title></head><body>
<h1>Welcome</h1>
<a href="/client/register">Create account</a>
</body></html>`

const clientAppHTML = `<!DOCTYPE html>
<html><head><title>Create account - Federated Client</title></head><body>
<div id="hs-section">
  <span id="hs-current">matrix.org</span>
  <div role="button" id="hs-edit" tabindex="0">Edit</div>
  <input id="homeserver" type="url" value="">
  <div role="button" id="hs-continue" tabindex="0">Continue</div>
</div>
<div id="reg-section" hidden>
  <input id="username" name="username" type="text">
  <input id="password" name="password" type="password">
  <input id="passwordConfirm" name="passwordConfirm" type="password">
  <div role="button" id="register" tabindex="0">Register</div>
  <p id="reg-error" hidden></p>
</div>
<div id="app-section" hidden>
  <div aria-label="Start chat" id="start-chat" tabindex="0">Start chat</div>
  <div id="chat-dialog" hidden>
    <input type="text" id="target-input" placeholder="Who would you like to chat with?">
    <div role="button" id="go" tabindex="0">Go</div>
  </div>
  <div id="room" hidden>
    <div id="timeline"></div>
    <div contenteditable="true" id="composer"></div>
  </div>
</div>
<script>
const show = (id) => document.getElementById(id).removeAttribute('hidden');
const hide = (id) => document.getElementById(id).setAttribute('hidden', '');
// Finished sections are removed, not hidden: the real client unmounts them,
// and the runner's input[type='text'] locator must only ever see the
// start-chat dialog once registration is done.
const unmount = (id) => document.getElementById(id).remove();

document.getElementById('hs-edit').addEventListener('click', () => {
  document.getElementById('homeserver').focus();
});

document.getElementById('hs-continue').addEventListener('click', () => {
  window.chosenHomeserver = document.getElementById('homeserver').value;
  unmount('hs-section');
  show('reg-section');
});

document.getElementById('register').addEventListener('click', async () => {
  const body = {
    username: document.getElementById('username').value,
    password: document.getElementById('password').value,
    homeserver: window.chosenHomeserver || '',
  };
  if (body.password !== document.getElementById('passwordConfirm').value) {
    const err = document.getElementById('reg-error');
    err.textContent = 'Passwords do not match';
    err.removeAttribute('hidden');
    return;
  }
  const resp = await fetch('/client/api/register', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify(body),
  });
  if (!resp.ok) {
    const payload = await resp.json();
    const err = document.getElementById('reg-error');
    err.textContent = payload.error || 'Registration failed';
    err.removeAttribute('hidden');
    return;
  }
  unmount('reg-section');
  show('app-section');
});

document.getElementById('start-chat').addEventListener('click', () => {
  show('chat-dialog');
});

document.getElementById('go').addEventListener('click', async () => {
  const target = document.getElementById('target-input').value;
  await fetch('/client/api/startchat', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({target: target}),
  });
  hide('chat-dialog');
  show('room');
});

document.getElementById('composer').addEventListener('keydown', async (e) => {
  if (e.key !== 'Enter') return;
  e.preventDefault();
  const composer = document.getElementById('composer');
  const text = composer.textContent;
  if (!text) return;
  await fetch('/bridge/send', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({text: text}),
  });
  const line = document.createElement('div');
  line.textContent = text;
  document.getElementById('timeline').appendChild(line);
  composer.textContent = '';
});
</script>
</body></html>`
