package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"

	"github.com/goliatone/go-routegen"
	"github.com/goliatone/go-routegen/mount"
)

// appRoutes declares the site tree. Declaration order is dispatch
// order: /users/new comes before /users/:user_id so backends that
// match in registration order resolve the static path first.
func appRoutes() *routegen.Decl {
	return routegen.Root(
		routegen.NewDecl("users", "/users").
			Layout("UsersLayout").
			Fallback("UsersIndexPage").
			Children(
				routegen.NewDecl("new", "/new").View("NewUserPage"),
				routegen.NewDecl("user", "/:user_id").View("UserPage"),
			),
		routegen.NewDecl("about", "/about").View("AboutPage"),
	).Layout("AppLayout")
}

func appBindings() routegen.Bindings {
	return routegen.Bindings{}.
		Register("AppLayout", appLayout).
		Register("UsersLayout", usersLayout).
		Register("UsersIndexPage", usersIndexPage).
		Register("NewUserPage", newUserPage).
		Register("UserPage", userPage).
		Register("AboutPage", aboutPage).
		Register("NotFoundPage", notFoundPage)
}

func appLayout(next router.HandlerFunc) router.HandlerFunc {
	return func(c router.Context) error {
		c.SetHeader("X-App", "routegen-demo")
		return next(c)
	}
}

func usersLayout(next router.HandlerFunc) router.HandlerFunc {
	return func(c router.Context) error {
		c.SetHeader("X-Section", "users")
		return next(c)
	}
}

func usersIndexPage(c router.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"page": "users.index"})
}

func newUserPage(c router.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"page": "users.new"})
}

func userPage(c router.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"page": "users.show",
		"id":   c.Param("user_id"),
	})
}

func aboutPage(c router.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"page": "about"})
}

func notFoundPage(c router.Context) error {
	return c.JSON(http.StatusNotFound, map[string]any{"error": "page not found"})
}

func newFiberAdapter() router.Server[*fiber.App] {
	return router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return fiber.New(fiber.Config{
			AppName:           "routegen demo",
			EnablePrintRoutes: true,
		})
	})
}

func createApp() (router.Server[*fiber.App], *routegen.Compilation, error) {
	comp, err := routegen.Compile(appRoutes(),
		routegen.WithViews(appBindings()),
		routegen.WithGlobalNotFound("NotFoundPage"),
	)
	if err != nil {
		return nil, nil, err
	}

	app := newFiberAdapter()

	// fiber spells its catch-all "/*"
	if err := mount.Routes(app.Router(), comp, mount.Config{NotFoundPattern: "/*"}); err != nil {
		return nil, nil, err
	}

	return app, comp, nil
}

// apiRoutes is the tree used by the artifact demo. Resource expands
// the RESTful skeleton; the docs subtree shows a wildcard tail.
func apiRoutes() *routegen.Decl {
	return routegen.Root(
		routegen.Resource("post"),
		routegen.NewDecl("docs", "/docs").Children(
			routegen.NewDecl("page", "/*path"),
		),
	)
}

// emitArtifacts compiles the API tree and writes every derived
// surface: link helpers, the manifest, and generated Go and
// TypeScript sources.
func emitArtifacts(w io.Writer) error {
	comp, err := routegen.Compile(apiRoutes())
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "# link helpers")
	for _, call := range []struct {
		name   string
		values []string
	}{
		{"root.posts", nil},
		{"root.posts.post", []string{"42"}},
		{"root.posts.post.edit", []string{"42"}},
		{"root.docs.page", []string{"guides/intro"}},
	} {
		link, err := comp.Materialize(call.name, call.values...)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s%v => %s\n", call.name, call.values, link)
	}

	fmt.Fprintln(w, "\n# manifest")
	overlay := map[string]any{"meta": map[string]any{"service": "demo"}}
	if err := comp.WriteManifest(w, overlay); err != nil {
		return err
	}

	src, err := routegen.NewGoGenerator(comp, routegen.WithPackageName("apiroutes")).Generate()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\n# generated go")
	w.Write(src)

	ts, err := routegen.NewTSGenerator(comp).Generate()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\n# generated typescript")
	w.Write(ts)

	return nil
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "gen" {
		if err := emitArtifacts(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	app, comp, err := createApp()
	if err != nil {
		log.Fatal(err)
	}

	for _, d := range comp.Descriptors {
		fmt.Printf("route %-22s %s\n", d.Name(), d.FullPattern())
	}

	go func() {
		if err := app.Serve(":9092"); err != nil {
			log.Panic(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	if err := app.Shutdown(context.TODO()); err != nil {
		log.Panic(err)
	}
}
