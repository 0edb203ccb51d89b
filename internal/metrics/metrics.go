package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	VerificationTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workjunction_verification_transitions_total",
		Help: "Worker verification stage changes by trigger and resulting stage",
	}, []string{"trigger", "stage"})

	VerificationRefused = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workjunction_verification_refused_total",
		Help: "Undefined verification transitions attempted, by trigger",
	}, []string{"trigger"})

	Uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workjunction_uploads_total",
		Help: "Document uploads by folder and result",
	}, []string{"folder", "result"})

	OTPSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workjunction_otp_sent_total",
		Help: "OTP send attempts by result",
	}, []string{"result"})

	OTPVerified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workjunction_otp_verified_total",
		Help: "OTP verification attempts by result",
	}, []string{"result"})
)

// Handler exposes the default registry on a Fiber route.
func Handler() fiber.Handler {
	h := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		h(c.Context())
		return nil
	}
}
