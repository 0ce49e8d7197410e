// Command todo serves a per-user to-do list.
package main

import (
	"os"

	"github.com/inkpad/webapps/internal/app"
	"github.com/inkpad/webapps/internal/pkg/config"
)

func main() {
	os.Exit(app.Main(config.AppTodo))
}
