package server

import (
	"compress/gzip"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/dimfeld/httptreemux"
	"github.com/facebookgo/grace/gracehttp"
	"github.com/go-playground/log"
	"github.com/gorilla/handlers"

	"github.com/rthearn/ivory/config"
)

func startWebServer() (err error) {
	r := createRouter()
	addr := config.Get().Address
	log.Info("listening on " + addr)

	err = gracehttp.Serve(&http.Server{
		Addr:    addr,
		Handler: r,
	})
	if err != nil {
		log.Errorf("web server: %s", err)
	}
	return
}

func handlePanic(w http.ResponseWriter, r *http.Request, err interface{}) {
	http.Error(w, fmt.Sprintf("500 %s", err), 500)
	log.Errorf("server: %s %s: %#v\n%s", r.Method, r.URL.Path, err,
		debug.Stack())
}

// Create the monolithic router for routing HTTP requests. Separated into
// own function for easier testability.
func createRouter() http.Handler {
	r := httptreemux.NewContextMux()
	r.NotFoundHandler = func(w http.ResponseWriter, _ *http.Request) {
		text404(w)
	}
	r.PanicHandler = handlePanic

	// JSON API
	json := r.NewGroup("/json")
	json.GET("/config", serveConfigs)
	json.GET("/boards", serveBoards)
	json.GET("/boards/:board", serveBoard)
	json.GET("/boards/:board/:topic", serveTopic)
	json.GET("/post/:post", servePost)
	json.GET("/news", serveNews)
	json.GET("/users", serveUsers)
	json.GET("/user/:user", serveUser)
	json.GET("/badges", serveBadges)
	json.GET("/badges/:name", serveBadge)

	// Form mutation API
	api := r.NewGroup("/api")
	api.POST("/login", login)
	api.POST("/signup", signup)
	api.POST("/logout", logout)
	api.POST("/editprofile", editProfile)

	api.POST("/post", createPost)
	api.POST("/reply", createReply)
	api.POST("/editreply", editReply)
	api.POST("/deletepost", deleteReply)
	api.POST("/lockpost", setPostLock(true))
	api.POST("/unlockpost", setPostLock(false))

	api.POST("/createboard", createBoard)
	api.POST("/deleteboard", deleteBoard)
	api.POST("/createtopic", createTopic)
	api.POST("/deletetopic", deleteTopic)
	api.POST("/locktopic", setTopicLock(true))
	api.POST("/unlocktopic", setTopicLock(false))
	api.POST("/sticky", setSticky(true))
	api.POST("/unsticky", setSticky(false))

	api.POST("/createnews", createNews)
	api.POST("/editnews", editNews)
	api.POST("/deletenews", deleteNews)

	api.POST("/createbadge", createBadge)
	api.POST("/editbadge", editBadge)
	api.POST("/deletebadge", deleteBadge)
	api.POST("/managebadges", manageBadges)
	api.POST("/manageuser", manageUser)
	api.POST("/deleteuser", deleteUser)

	h := http.Handler(r)
	if config.Get().EnableGzip {
		h = handlers.CompressHandlerLevel(h, gzip.DefaultCompression)
	}

	return h
}
