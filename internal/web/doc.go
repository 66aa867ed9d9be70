// Package web is the HTTP runtime of the service: an App built on chi, a
// request Context, typed HTTP errors and a server loop with startup and
// shutdown hooks.
//
// Handlers return errors instead of writing failures themselves:
//
//	func (h *Handler) getPost(c web.Context) error {
//	    post, err := h.svc.Post(c, c.Param("slug"))
//	    if errors.Is(err, content.ErrPostNotFound) {
//	        return web.ErrNotFound("Post not found")
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, post)
//	}
//
// The App's ErrorHandler renders whatever comes back; JSONErrorHandler
// writes {"error": message}.
//
// Run blocks until SIGINT/SIGTERM, then stops the listener, waits for
// in-flight requests and runs shutdown hooks in order:
//
//	err := app.Run(cfg.Server.Address,
//	    web.Server(cfg.Server),
//	    web.StartupHook(jobs.StartFunc()),
//	    web.ShutdownHook(jobs.Shutdown()),
//	    web.ShutdownHook(db.Shutdown(pool)),
//	)
package web
