package loadtest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/passnet/internal/adapters/http/api"
	service "github.com/okian/passnet/internal/app"
	"github.com/okian/passnet/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:       baseURL,
		Requests:      8,
		Passes:        60,
		Squad:         11,
		Workers:       3,
		Timeout:       5 * time.Second,
		DistanceScale: 10_000,
		Seed:          42,
	}
}

func TestGenerate(t *testing.T) {
	convey.Convey("Given a seeded generator", t, func() {
		cfg := testConfig("")

		convey.Convey("Then equal seeds give equal passes", func() {
			a, b := generate(cfg), generate(cfg)
			convey.So(a, convey.ShouldHaveLength, 8)
			convey.So(a[3].Passes, convey.ShouldResemble, b[3].Passes)
			convey.So(a[3].Label, convey.ShouldNotEqual, b[3].Label)
		})

		convey.Convey("Then no pass goes to its own passer", func() {
			for _, set := range generate(cfg) {
				for _, p := range set.Passes {
					convey.So(p.Passer, convey.ShouldNotEqual, p.Receiver)
				}
			}
		})
	})
}

func TestVerify(t *testing.T) {
	convey.Convey("Given a pass set of three passes between two players", t, func() {
		set := PassSet{Passes: []Pass{
			{Passer: "1", Receiver: "2"}, {Passer: "1", Receiver: "2"}, {Passer: "2", Receiver: "1"},
		}}
		good := Network{
			Passes: 3,
			Nodes: []Node{
				{ID: "1", Metrics: map[string]float64{"in-strength": 1, "out-strength": 2}},
				{ID: "2", Metrics: map[string]float64{"in-strength": 2, "out-strength": 1}},
			},
			Edges: []Edge{
				{From: "1", To: "2", Intensity: 2, Distance: 5000},
				{From: "2", To: "1", Intensity: 1, Distance: 10000},
			},
		}

		convey.Convey("Then a consistent network passes", func() {
			convey.So(verify(set, good, 10_000), convey.ShouldBeNil)
		})

		convey.Convey("Then a wrong distance is reported", func() {
			good.Edges[0].Distance = 3333
			convey.So(verify(set, good, 10_000), convey.ShouldNotBeNil)
		})

		convey.Convey("Then unbalanced strengths are reported", func() {
			good.Nodes[0].Metrics["in-strength"] = 5
			convey.So(verify(set, good, 10_000), convey.ShouldNotBeNil)
		})

		convey.Convey("Then balanced strengths that miss the pass count are reported", func() {
			good.Nodes[0].Metrics = map[string]float64{"in-strength": 2, "out-strength": 2}
			good.Nodes[1].Metrics = map[string]float64{"in-strength": 2, "out-strength": 2}
			err := verify(set, good, 10_000)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "in-strength sum 4, want 3 passes")
			convey.So(err.Error(), convey.ShouldContainSubstring, "out-strength sum 4, want 3 passes")
		})

		convey.Convey("Then strengths the service did not compute are not checked", func() {
			good.Nodes[0].Metrics = map[string]float64{}
			good.Nodes[1].Metrics = map[string]float64{}
			convey.So(verify(set, good, 10_000), convey.ShouldBeNil)
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a running passnet service", t, func() {
		ctx := context.Background()
		svc := service.New()
		srv := httptest.NewServer(api.NewServer(svc, svc).Router(ctx))
		defer srv.Close()

		convey.Convey("When running a load test against it", func() {
			cfg := testConfig(srv.URL)
			cfg.OutputFile = filepath.Join(t.TempDir(), "sets.json")
			stats, err := Run(ctx, cfg)

			convey.Convey("Then every network is consistent", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(stats.Submitted, convey.ShouldEqual, 8)
				convey.So(stats.Successful, convey.ShouldEqual, 8)
				convey.So(stats.Failed, convey.ShouldEqual, 0)
				convey.So(stats.Inconsistent, convey.ShouldEqual, 0)
			})

			convey.Convey("And the pass sets are saved", func() {
				data, err := os.ReadFile(cfg.OutputFile)
				convey.So(err, convey.ShouldBeNil)
				var sets []PassSet
				convey.So(json.Unmarshal(data, &sets), convey.ShouldBeNil)
				convey.So(sets, convey.ShouldHaveLength, 8)
			})
		})
	})

	convey.Convey("Given an unhealthy service", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := Run(context.Background(), testConfig(srv.URL))
		convey.So(err, convey.ShouldNotBeNil)
	})
}
