// Command blog serves the multi-user blog.
//
// @title       inkpad blog
// @version     1.0
// @description Public feed of posts; only a post's author may edit or delete it.
// @BasePath    /
package main

import (
	"os"

	"github.com/inkpad/webapps/internal/app"
	"github.com/inkpad/webapps/internal/pkg/config"
)

func main() {
	os.Exit(app.Main(config.AppBlog))
}
