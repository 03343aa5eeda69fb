package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/rentals/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const testDataset = `movies:
  M1: { title: Stalker, category: regular }
  M2: { title: Totoro, category: children }
customers:
  - name: ana
    rentals:
      - { movie_id: M1, days: 5 }
  - name: bo
    rentals:
      - { movie_id: M2, days: 4 }
`

func TestRootCommand(t *testing.T) {
	t.Setenv("RENTALS_CONFIG", "")

	convey.Convey("Given the rentals CLI", t, func() {
		convey.Convey("When printing the version", func() {
			out, _, err := run("version")

			convey.Convey("Then it should print the build version", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldEqual, "rentals version "+version+"\n")
			})
		})

		convey.Convey("When rendering the built-in sample", func() {
			out, _, err := run("statement")

			convey.Convey("Then the scenario statement should be printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Rental Record for martin")
				convey.So(out, convey.ShouldContainSubstring, "Amount owed is    8.50")
				convey.So(out, convey.ShouldContainSubstring, "Earned 4 frequent renter points")
			})
		})

		convey.Convey("When rendering a dataset file for one customer", func() {
			data := writeFile(t, "data.yaml", testDataset)
			out, _, err := run("statement", "--data", data, "--customer", "bo")

			convey.Convey("Then only that customer should be printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Rental Record for bo")
				convey.So(out, convey.ShouldNotContainSubstring, "ana")
				convey.So(out, convey.ShouldContainSubstring, "Amount owed is    3.00")
			})
		})

		convey.Convey("When rendering every customer of a dataset", func() {
			data := writeFile(t, "data.yaml", testDataset)
			out, _, err := run("statement", "--data", data)

			convey.Convey("Then statements should follow dataset order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Rental Record for ana")
				convey.So(out, convey.ShouldContainSubstring, "Amount owed is    5.00")
				convey.So(bytes.Index([]byte(out), []byte("ana")), convey.ShouldBeLessThan, bytes.Index([]byte(out), []byte("bo")))
			})
		})

		convey.Convey("When pricing comes from a config file", func() {
			cfg := writeFile(t, "config.yaml", "pricing:\n  regular:\n    base: \"4.00\"\n")
			out, _, err := run("statement", "--config", cfg, "--customer", "martin")

			convey.Convey("Then the configured rules should be applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Amount owed is   12.50")
			})
		})

		convey.Convey("When asking for an unknown customer", func() {
			_, _, err := run("statement", "--customer", "nobody")

			convey.Convey("Then it should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "nobody")
			})
		})

		convey.Convey("When the config file is missing", func() {
			_, _, err := run("statement", "--config", filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then loading should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "load config")
			})
		})

		convey.Convey("When listing movies", func() {
			out, _, err := run("movies")

			convey.Convey("Then the sample catalog should be listed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "CATEGORY")
				convey.So(out, convey.ShouldContainSubstring, "F004")
				convey.So(out, convey.ShouldContainSubstring, "new-release")
			})
		})
	})
}

func TestServe(t *testing.T) {
	convey.Convey("Given an HTTP server", t, func() {
		srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler(), ReadHeaderTimeout: readHeaderTimeout}

		convey.Convey("When its context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			convey.Convey("Then serve should shut down cleanly", func() {
				convey.So(serve(ctx, srv, logger.Nop()), convey.ShouldBeNil)
			})
		})
	})
}
