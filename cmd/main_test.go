package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	repository "github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/config"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// run executes the CLI with args and returns stdout, stderr and the error.
func run(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestCLI(t *testing.T) {
	convey.Convey("Given a fresh database path", t, func() {
		db := filepath.Join(t.TempDir(), "event.db")

		convey.Convey("When a command needs a database that does not exist", func() {
			_, _, err := run("summary", "--db", db)

			convey.Convey("Then it should point at scout new", func() {
				convey.So(errors.Is(err, repository.ErrDatabaseNotFound), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "scout new")
			})
		})

		convey.Convey("When the database is created", func() {
			out, _, err := run("new", "--db", db)
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "created")

			convey.Convey("Then creating it again should need --force", func() {
				_, _, err := run("new", "--db", db)
				convey.So(errors.Is(err, repository.ErrDatabaseExists), convey.ShouldBeTrue)
				_, _, err = run("new", "--db", db, "--force")
				convey.So(err, convey.ShouldBeNil)
			})

			convey.Convey("Then observations can be added and summarized", func() {
				_, _, err := run("add", "--db", db, "--match", "1", "--team", "100", "--auto", "high", "--high", "4", "--minibot", "2")
				convey.So(err, convey.ShouldBeNil)
				_, _, err = run("add", "--db", db, "--match", "2", "--team", "100", "--high", "2", "--card", "red")
				convey.So(err, convey.ShouldBeNil)
				out, _, err := run("add", "--db", db, "--match", "1", "--team", "254", "--low", "3")
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "recorded observation 3")

				out, _, err = run("summary", "--db", db, "--format", "json")
				convey.So(err, convey.ShouldBeNil)
				var got []map[string]any
				convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)
				convey.So(len(got), convey.ShouldEqual, 2)
				convey.So(got[0]["team_number"], convey.ShouldEqual, 100.0)
				convey.So(got[0]["avg_high"], convey.ShouldEqual, 3.0)
				convey.So(got[0]["avg_minibot_place"], convey.ShouldEqual, 2.0)
				convey.So(got[0]["red_cards"], convey.ShouldEqual, 1.0)
				convey.So(got[1]["avg_minibot_place"], convey.ShouldBeNil)

				out, _, err = run("summary", "--db", db, "--sort", "avg_low", "--desc", "--format", "csv")
				convey.So(err, convey.ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(out), "\n")
				convey.So(len(lines), convey.ShouldEqual, 3)
				convey.So(lines[1], convey.ShouldStartWith, "1,254,")

				out, _, err = run("list", "--db", db, "--team", "254")
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "254")
				convey.So(out, convey.ShouldNotContainSubstring, "red")
			})

			convey.Convey("Then an invalid observation should be rejected", func() {
				_, _, err := run("add", "--db", db, "--match", "1", "--team", "100", "--high", "-2")
				convey.So(errors.Is(err, model.ErrInvalidObservation), convey.ShouldBeTrue)

				_, _, err = run("add", "--db", db, "--match", "1", "--team", "100", "--card", "green")
				convey.So(err, convey.ShouldNotBeNil)
			})

			convey.Convey("Then add should require match and team", func() {
				_, _, err := run("add", "--db", db, "--team", "100")
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "match")
			})

			convey.Convey("Then seeding should fill the database", func() {
				out, _, err := run("seed", "--db", db, "--teams", "8", "--matches", "5", "--seed", "7")
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "seeded 30 observations")

				store, err := repository.Open(context.Background(), db, repository.WithLogger(logger.Nop()))
				convey.So(err, convey.ShouldBeNil)
				defer store.Close()
				n, err := store.Count(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(n, convey.ShouldEqual, 30)
			})

			convey.Convey("Then an unknown sort column should fail", func() {
				_, _, err := run("summary", "--db", db, "--sort", "speed")
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When seeding as a dry run", func() {
			output := filepath.Join(t.TempDir(), "generated.json")
			out, _, err := run("seed", "--db", db, "--dry-run", "--teams", "6", "--matches", "3", "--output", output)

			convey.Convey("Then summaries should print without touching the database", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Team summaries")
				_, statErr := os.Stat(db)
				convey.So(errors.Is(statErr, os.ErrNotExist), convey.ShouldBeTrue)
				_, statErr = os.Stat(output)
				convey.So(statErr, convey.ShouldBeNil)
			})
		})
	})
}

func TestCLIConfig(t *testing.T) {
	convey.Convey("Given a config file", t, func() {
		dir := t.TempDir()
		db := filepath.Join(dir, "from-config.db")
		cfgPath := filepath.Join(dir, "scout.yaml")
		yaml := "db_path: " + db + "\nformat: csv\n"
		convey.So(os.WriteFile(cfgPath, []byte(yaml), 0o600), convey.ShouldBeNil)

		convey.Convey("When commands use --config", func() {
			_, _, err := run("new", "--config", cfgPath)
			convey.So(err, convey.ShouldBeNil)
			out, _, err := run("summary", "--config", cfgPath)

			convey.Convey("Then the configured database and format should be used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(strings.TrimSpace(out), convey.ShouldStartWith, "rank,team_number")
				_, statErr := os.Stat(db)
				convey.So(statErr, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the config file is missing", func() {
			_, _, err := run("summary", "--config", filepath.Join(dir, "nope.yaml"))

			convey.Convey("Then a load error should be returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestEnsureLoopback(t *testing.T) {
	convey.Convey("Given listen addresses", t, func() {
		convey.Convey("Then loopback addresses should be accepted", func() {
			convey.So(ensureLoopback("127.0.0.1:9080"), convey.ShouldBeNil)
			convey.So(ensureLoopback("localhost:9080"), convey.ShouldBeNil)
			convey.So(ensureLoopback("[::1]:9080"), convey.ShouldBeNil)
		})

		convey.Convey("Then other addresses should be rejected", func() {
			convey.So(ensureLoopback(":9080"), convey.ShouldNotBeNil)
			convey.So(ensureLoopback("0.0.0.0:9080"), convey.ShouldNotBeNil)
			convey.So(ensureLoopback("192.168.1.20:9080"), convey.ShouldNotBeNil)
			convey.So(ensureLoopback("not-an-address"), convey.ShouldNotBeNil)
		})
	})
}

func TestServeRejectsPublicAddress(t *testing.T) {
	convey.Convey("Given a database", t, func() {
		db := filepath.Join(t.TempDir(), "event.db")
		_, _, err := run("new", "--db", db)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When serving on all interfaces", func() {
			_, _, err := run("serve", "--db", db, "--addr", ":9080")

			convey.Convey("Then it should refuse before listening", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "loopback")
			})
		})
	})
}
