package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should register its collectors there", func() {
				So(manager, ShouldNotBeNil)
				manager.networksBuilt.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				withNamespace("test"),
				withSubsystem("graph"),
				withHistogramBuckets([]float64{1, 10}),
				withConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "graph")
				So(manager.latencyBuckets, ShouldResemble, []float64{1, 10})
				So(manager.constLabels["env"], ShouldEqual, "test")
			})
		})

		Convey("When creating with empty values", func() {
			manager := NewManager(
				withNamespace(""),
				withSubsystem(""),
				withHistogramBuckets(nil),
				withConstLabels(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "passnet")
				So(manager.subsystem, ShouldEqual, "network")
				So(manager.latencyBuckets, ShouldNotBeEmpty)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When a network is built", func() {
			before := testutil.ToFloat64(globalManager.networksBuilt)
			RecordNetworkBuilt(120, 11, 48, 0.7)

			Convey("Then the build counter increases", func() {
				So(testutil.ToFloat64(globalManager.networksBuilt), ShouldEqual, before+1)
			})
		})

		Convey("When metrics and errors are recorded", func() {
			before := testutil.ToFloat64(globalManager.metricComputations.WithLabelValues("betweenness"))
			RecordMetricComputed("betweenness", 1.2)
			RecordBuildError("invalid_pass")

			Convey("Then labelled counters increase", func() {
				So(testutil.ToFloat64(globalManager.metricComputations.WithLabelValues("betweenness")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.buildErrors.WithLabelValues("invalid_pass")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When a worker job finishes", func() {
			before := testutil.ToFloat64(globalManager.jobs.WithLabelValues("phases", "ok"))
			RecordJob("phases", "ok", 2.5)
			RecordJob("phases", "skipped", 0)

			Convey("Then the job counter increases per status", func() {
				So(testutil.ToFloat64(globalManager.jobs.WithLabelValues("phases", "ok")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.jobs.WithLabelValues("phases", "skipped")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording HTTP and system metrics", func() {
			So(func() {
				RecordHTTPRequest("/networks", "POST", "200")
				RecordHTTPRequestDuration("/networks", "POST", "200", 3.5)
				RecordErrorByEndpoint("/networks", "POST", "client_error")
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
			}, ShouldNotPanic)
		})
	})
}
