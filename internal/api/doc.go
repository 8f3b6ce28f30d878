// Package api exposes the tabstash HTTP surface.
//
// Routes:
//
//	POST   /auth/register                 create an account
//	POST   /auth/login                    password login, returns session token
//	POST   /auth/revalidate               password re-proof, returns fresh token
//	GET    /auth/user/{id}                public profile (no password hash)
//
//	POST   /save_tab                      save a tab            (gated)
//	POST   /save_tab/update_last_opened   bump last_opened      (gated)
//	PUT    /update_tab_title              rename a tab          (gated)
//	GET    /get_tabs                      list the owner's tabs (gated)
//	DELETE /delete_tab                    remove a tab          (gated)
//
//	GET    /healthz                       liveness probe
//	GET    /metrics                       prometheus metrics (when enabled)
//
// Gated routes require an Authorization: Bearer <token> header and operate
// only on records owned by the token's subject. Errors use the
// {"message": "..."} envelope the extension client expects.
package api
