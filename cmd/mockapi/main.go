package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/MicahParks/keyfunc"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"boardsync/mockapi"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	var auth mockapi.Authenticator
	switch {
	case os.Getenv("AUTH_DISABLED") == "1":
		auth = mockapi.AllowAll{}
	case os.Getenv("AUTH_TEST_MODE") == "1":
		secret := os.Getenv("TEST_JWT_SECRET")
		if secret == "" {
			log.Fatal("TEST_JWT_SECRET must be set when AUTH_TEST_MODE=1")
		}
		auth = mockapi.NewTestAuth([]byte(secret))
	default:
		audience := os.Getenv("AUTH_AUDIENCE")
		domain := os.Getenv("AUTH_DOMAIN")
		if audience == "" && domain == "" {
			log.Warn("no auth config set, serving without authentication")
			auth = mockapi.AllowAll{}
			break
		}
		if audience == "" || domain == "" {
			log.Fatal("AUTH_AUDIENCE and AUTH_DOMAIN must be set together")
		}
		jwksURL := fmt.Sprintf("https://%s/.well-known/jwks.json", domain)
		jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{})
		if err != nil {
			log.Fatalf("jwks: %v", err)
		}
		auth = mockapi.NewAuth(jwks, audience, "https://"+domain+"/")
	}

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("mockapi"))
	e.GET("/metrics", echoprometheus.NewHandler())

	logger := log.New()
	mockapi.Register(e, mockapi.Seed(), auth, logger)

	listenAddr := ":8081"
	if val, ok := os.LookupEnv("LISTEN_ADDR"); ok {
		listenAddr = val
	}

	e.Logger.Fatal(e.Start(listenAddr))
}
