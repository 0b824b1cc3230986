package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/passnet/internal/adapters/http/api"
	service "github.com/okian/passnet/internal/app"
	"github.com/okian/passnet/internal/domain/model"
	"github.com/okian/passnet/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type networkBody struct {
	ID     string `json:"id"`
	Passes int    `json:"passes"`
	Nodes  []struct {
		ID      string             `json:"id"`
		X       float64            `json:"x"`
		Y       float64            `json:"y"`
		Metrics map[string]float64 `json:"metrics"`
	} `json:"nodes"`
	Edges []struct {
		From      string  `json:"from"`
		To        string  `json:"to"`
		Intensity int     `json:"intensity"`
		Distance  float64 `json:"distance"`
	} `json:"edges"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// failingDeps fails every call with err.
type failingDeps struct{ err error }

func (f failingDeps) Analyze(context.Context, service.AnalysisRequest) (*service.Analysis, error) {
	return nil, f.err
}

func (f failingDeps) AnalyzeMatch(context.Context, service.MatchRequest) (*service.Analysis, error) {
	return nil, f.err
}

func (f failingDeps) AnalyzePhases(context.Context, service.MatchRequest) ([]*service.Analysis, error) {
	return nil, f.err
}

func (f failingDeps) Phases(context.Context, string, []model.MatchEvent) ([]int, error) {
	return nil, f.err
}

func newHandler(deps api.Dependencies, stats api.StatsProvider, opts ...api.Option) http.Handler {
	return api.NewServer(deps, stats, opts...).Router(context.Background())
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

const scenarioA = `{"passes": [
	{"passer": "1", "receiver": "2", "x": 10, "y": 10, "end_x": 20, "end_y": 20},
	{"passer": "1", "receiver": "2", "x": 10, "y": 10, "end_x": 20, "end_y": 20},
	{"passer": "1", "receiver": "2", "x": 10, "y": 10, "end_x": 20, "end_y": 20},
	{"passer": "2", "receiver": "1", "x": 20, "y": 20, "end_x": 10, "end_y": 10}
]}`

func TestServer_Routes(t *testing.T) {
	Convey("Given an API server backed by the analysis service", t, func() {
		svc := service.New()
		h := newHandler(svc, svc)

		Convey("When requesting the health endpoint", func() {
			w := do(h, http.MethodGet, "/healthz", "")

			Convey("Then it reports ok", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
			})
		})

		Convey("When requesting the stats endpoint", func() {
			w := do(h, http.MethodGet, "/stats", "")

			Convey("Then it returns service counters", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
				So(w.Body.String(), ShouldContainSubstring, "analyses")
			})
		})

		Convey("When requesting the metrics endpoint after an analysis", func() {
			_ = do(h, http.MethodPost, "/networks", scenarioA)
			w := do(h, http.MethodGet, "/metrics", "")

			Convey("Then Prometheus metrics are exposed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "built_total")
			})
		})

		Convey("When using the wrong method", func() {
			w := do(h, http.MethodGet, "/networks", "")

			Convey("Then it is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Body.String(), ShouldContainSubstring, `"code":"method_not_allowed"`)
			})

			Convey("And the rejection is counted", func() {
				m := do(h, http.MethodGet, "/metrics", "")
				So(m.Body.String(), ShouldContainSubstring, `error_type="method_not_allowed"`)
			})
		})

		Convey("When requesting an unknown path", func() {
			w := do(h, http.MethodGet, "/nowhere", "")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldContainSubstring, `"code":"not_found"`)
			})
		})
	})
}

func TestNetworksHandler(t *testing.T) {
	Convey("Given an API server backed by the analysis service", t, func() {
		svc := service.New()
		h := newHandler(svc, svc, api.WithMaxPasses(10))

		Convey("When posting the passes of Scenario A", func() {
			w := do(h, http.MethodPost, "/networks", scenarioA)
			var body networkBody
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then the edges carry intensity and distance", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body.ID, ShouldNotBeEmpty)
				So(body.Passes, ShouldEqual, 4)
				So(body.Edges, ShouldHaveLength, 2)
				So(body.Edges[0].From, ShouldEqual, "1")
				So(body.Edges[0].Intensity, ShouldEqual, 3)
				So(body.Edges[0].Distance, ShouldEqual, 3333.3333)
				So(body.Edges[1].Distance, ShouldEqual, 10000.0)
			})

			Convey("And the nodes carry strengths and positions", func() {
				So(body.Nodes, ShouldHaveLength, 2)
				p1 := body.Nodes[0]
				So(p1.ID, ShouldEqual, "1")
				So(p1.X, ShouldEqual, 10)
				So(p1.Metrics["out-strength"], ShouldEqual, 3)
				So(p1.Metrics["in-strength"], ShouldEqual, 1)
				So(p1.Metrics, ShouldContainKey, "out-harmonic")
			})
		})

		Convey("When selecting only out strength", func() {
			w := do(h, http.MethodPost, "/networks", `{
				"passes": [{"passer": "1", "receiver": "2", "x": 0, "y": 0, "end_x": 1, "end_y": 1}],
				"metrics": {"strength": ["out"], "centralities": []}
			}`)
			var body networkBody
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then no other metric is stored", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body.Nodes[0].Metrics, ShouldHaveLength, 1)
			})
		})

		Convey("When posting an empty pass set", func() {
			w := do(h, http.MethodPost, "/networks", `{"passes": []}`)
			var body networkBody
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then an empty network is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body.Nodes, ShouldBeEmpty)
				So(body.Edges, ShouldBeEmpty)
			})
		})

		Convey("When a centrality is unknown", func() {
			w := do(h, http.MethodPost, "/networks", `{"passes": [], "metrics": {"centralities": ["unknown"]}}`)
			var body errorBody
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(body.Code, ShouldEqual, "unsupported")
			})
		})

		Convey("When the body is malformed", func() {
			w := do(h, http.MethodPost, "/networks", `{"passes": [`)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When a pass has no passer", func() {
			w := do(h, http.MethodPost, "/networks", `{"passes": [{"receiver": "2"}]}`)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the pass set exceeds the limit", func() {
			passes := strings.Repeat(`{"passer": "1", "receiver": "2"},`, 11)
			w := do(h, http.MethodPost, "/networks", `{"passes": [`+strings.TrimSuffix(passes, ",")+`]}`)

			Convey("Then it is rejected as too large", func() {
				So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
			})
		})
	})

	Convey("Given an API server whose service fails unexpectedly", t, func() {
		h := newHandler(failingDeps{err: errors.New("boom")}, service.New())

		Convey("When posting passes", func() {
			w := do(h, http.MethodPost, "/networks", scenarioA)

			Convey("Then it is an internal error", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})
	})
}

const matchBody = `{
	"team": "Spain",
	%s
	"events": [
		{"index": 0, "type": "Pass", "team": "Spain", "player_id": 10, "recipient_id": 20, "x": 30, "y": 40, "end_x": 50, "end_y": 40},
		{"index": 1, "type": "Pass", "team": "Spain", "player_id": 20, "recipient_id": 10, "x": 60, "y": 40, "end_x": 70, "end_y": 40},
		{"index": 2, "type": "Substitution", "team": "Spain"},
		{"index": 3, "type": "Pass", "team": "Spain", "player_id": 10, "recipient_id": 30, "x": 50, "y": 40, "end_x": 60, "end_y": 40}
	],
	"lineup": [
		{"player_id": 10, "jersey_number": 1, "team": "Spain"},
		{"player_id": 20, "jersey_number": 2, "team": "Spain"}
	]
}`

func match(extra string) string {
	return strings.Replace(matchBody, "%s", extra, 1)
}

func TestMatchesHandler(t *testing.T) {
	Convey("Given an API server backed by the analysis service", t, func() {
		svc := service.New()
		h := newHandler(svc, svc)

		Convey("When listing phases", func() {
			w := do(h, http.MethodPost, "/matches/phases", `{"team": "Spain", "events": [
				{"index": 5, "type": "Substitution", "team": "Spain"},
				{"index": 6, "type": "Substitution", "team": "Spain"}
			]}`)

			Convey("Then consecutive substitutions form one boundary", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"boundaries":[6]`)
				So(w.Body.String(), ShouldContainSubstring, `"phases":2`)
			})
		})

		Convey("When listing phases without a team", func() {
			w := do(h, http.MethodPost, "/matches/phases", `{"events": []}`)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When building the network of the first phase", func() {
			w := do(h, http.MethodPost, "/matches/network", match(`"phase": 0,`))
			var body networkBody
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then the jersey numbers are the nodes", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body.Passes, ShouldEqual, 2)
				So(body.Nodes, ShouldHaveLength, 2)
				So(body.Nodes[1].ID, ShouldEqual, "2")
			})
		})

		Convey("When restricting the first phase to the defensive third", func() {
			w := do(h, http.MethodPost, "/matches/network", match(`"phase": 0, "third": "def",`))
			var body networkBody
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then only passes starting there count", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body.Passes, ShouldEqual, 1)
			})
		})

		Convey("When the third is unknown", func() {
			w := do(h, http.MethodPost, "/matches/network", match(`"third": "box",`))

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the progression is unknown", func() {
			w := do(h, http.MethodPost, "/matches/network", match(`"progression": "a2d",`))

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When an event lies outside the configured pitch", func() {
			narrow := service.New(service.WithPitchWidth(30))
			w := do(newHandler(narrow, narrow), http.MethodPost, "/matches/network", match(`"phase": 0,`))

			Convey("Then it is unprocessable", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(w.Body.String(), ShouldContainSubstring, "off_pitch")
			})
		})

		Convey("When the second phase involves a player missing from the lineup", func() {
			w := do(h, http.MethodPost, "/matches/network", match(`"phase": 1,`))
			var body errorBody
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then it is unprocessable", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(body.Code, ShouldEqual, "unknown_player")
			})
		})

		Convey("When the phase does not exist", func() {
			w := do(h, http.MethodPost, "/matches/network", match(`"phase": 5,`))
			var body errorBody
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then it is unprocessable", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(body.Code, ShouldEqual, "phase_out_of_range")
			})
		})

		Convey("When building the networks of every phase", func() {
			w := do(h, http.MethodPost, "/matches/networks", `{"team": "Spain", "events": [
				{"index": 0, "type": "Pass", "team": "Spain", "player_id": 10, "recipient_id": 20, "x": 30, "y": 40, "end_x": 50, "end_y": 40},
				{"index": 1, "type": "Substitution", "team": "Spain"},
				{"index": 2, "type": "Pass", "team": "Spain", "player_id": 20, "recipient_id": 10, "x": 60, "y": 40, "end_x": 70, "end_y": 40}
			], "lineup": [
				{"player_id": 10, "jersey_number": 1, "team": "Spain"},
				{"player_id": 20, "jersey_number": 2, "team": "Spain"}
			]}`)
			var body struct {
				Team   string        `json:"team"`
				Phases []networkBody `json:"phases"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then each phase has its own network", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body.Team, ShouldEqual, "Spain")
				So(body.Phases, ShouldHaveLength, 2)
				So(body.Phases[0].Edges[0].From, ShouldEqual, "1")
				So(body.Phases[1].Edges[0].From, ShouldEqual, "2")
			})
		})

		Convey("When one phase fails", func() {
			w := do(h, http.MethodPost, "/matches/networks", match(""))

			Convey("Then the batch is unprocessable", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			})
		})
	})
}
