// Package monitoring exports the Prometheus instruments for the service.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UploadProgress tracks the index-weighted progress of the most recent
	// photo batch as a fraction in [0,1].
	UploadProgress = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "photodrive_upload_progress_ratio",
		Help: "Progress of the current photo batch upload.",
	})

	// UploadsTotal counts photo objects stored successfully.
	UploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photodrive_uploads_total",
		Help: "Number of photos uploaded successfully.",
	})

	// UploadFailures counts batches aborted mid-flight.
	UploadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photodrive_upload_failures_total",
		Help: "Number of photo batches aborted by an upload error.",
	})

	// PhotoBytes counts bytes accepted into the object store.
	PhotoBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photodrive_photo_bytes_total",
		Help: "Total photo bytes written to the object store.",
	})

	// SharesTotal counts share grants.
	SharesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photodrive_shares_total",
		Help: "Number of folder share grants.",
	})

	// PasscodeRejections counts failed passcode reveal attempts. These are
	// normal outcomes, not faults, but their rate is worth watching.
	PasscodeRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photodrive_passcode_rejections_total",
		Help: "Number of rejected passcode reveal attempts.",
	})
)
