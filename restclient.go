package labdesk

import (
	"crypto/tls"
	"time"

	"github.com/blutspende/labdesk/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/go-resty/resty/v2"
)

func NewRestyClient(configuration *config.Configuration, useProxy bool) *resty.Client {
	client := resty.New().
		SetTimeout(time.Duration(configuration.StandardAPIClientTimeoutSeconds) * time.Second).
		OnBeforeRequest(configureRequest(configuration)).
		OnAfterResponse(logResponse(configuration))

	if configuration.Development {
		client = client.SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: true,
		})
	}
	if useProxy && configuration.Proxy != "" {
		client.SetProxy(configuration.Proxy)
	}

	return client
}

func configureRequest(configuration *config.Configuration) resty.RequestMiddleware {
	return func(client *resty.Client, request *resty.Request) error {
		request.SetHeader("Accept", "application/json")
		if configuration.LogLevel <= zerolog.DebugLevel {
			request.EnableTrace()
		}
		return nil
	}
}

func logResponse(configuration *config.Configuration) resty.ResponseMiddleware {
	return func(client *resty.Client, response *resty.Response) error {
		if configuration.LogLevel > zerolog.DebugLevel {
			return nil
		}
		log.Debug().
			Str("method", response.Request.Method).
			Str("url", response.Request.URL).
			Int("status", response.StatusCode()).
			Dur("latency", response.Time()).
			Msg("hospital backend call")
		return nil
	}
}
