// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/likexian/selfca"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pwd-strength/internal/api"
	"pwd-strength/internal/store"
	"pwd-strength/internal/util"
	"pwd-strength/pkg/hibp"
	"pwd-strength/pkg/strength"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the password strength checker as a web application",
		Long: "Serve the submission form, the check API, and the stored results. Database, breach " +
			"API, and blacklist corpus settings come from the environment (DB_DRIVER, DB_DSN, " +
			"HIBP_URL, BLACKLIST_FILE, DEBUG).",
	}
)

func init() {
	serveCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return serveCommand()
	}
	serveCmd.Flags().BoolVar(&selfTLS, "self-tls", false,
		"If the server should use a self-signed certificate when starting. The certificate is renewed on each server restart")
	serveCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "Path to the PEM encoded TLS certificate to be used by the server")
	serveCmd.Flags().StringVar(&tlsKey, "tls-key", "", "Path to the PEM encoded TLS private key to be used by the server")
	serveCmd.Flags().Uint16VarP(&port, "port", "p", 3100, "Port to be used by the server")

	rootCmd.AddCommand(serveCmd)
}

func serveCommand() error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	cfg, err := api.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	if !verbose && !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	blacklist, err := loadBlacklist(cfg.BlacklistFile)
	if err != nil {
		return err
	}

	evaluator := strength.NewEvaluator(
		blacklist,
		hibp.NewClient(cfg.HibpURL, hibp.DefaultTimeout),
		strength.DefaultGuessRate,
	)

	results, err := store.New(context.Background(), cfg.DBDriver, cfg.DBDsn)
	if err != nil {
		return fmt.Errorf("error opening results database: %w", err)
	}
	defer func() {
		if err := results.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing results database")
		}
	}()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.SetLogger(logger.WithLogger(func(c *gin.Context, z zerolog.Logger) zerolog.Logger {
		return zerolog.New(gin.DefaultWriter).With().Timestamp().Logger()
	})))
	router.SetHTMLTemplate(api.Templates())

	api.RegisterFormPage(router.Group("/"))

	v1 := router.Group("/v1")
	api.RegisterStrengthApi(v1.Group("/check"), evaluator, results)

	// PORT from the environment overrides the flag default; an explicit
	// --port still wins.
	srvAddr := fmt.Sprintf(":%d", port)
	if cfg.Port != "" && !serveCmd.Flags().Changed("port") {
		srvAddr = fmt.Sprintf(":%s", cfg.Port)
	}
	srv := &http.Server{
		Addr:    srvAddr,
		Handler: router,
	}

	go func() {
		log.Info().Msgf("starting TLS Server on address: %s", srvAddr)
		if tlsCert != "" && tlsKey != "" {
			// service connections with tls certs
			if err := srv.ListenAndServeTLS(tlsCert, tlsKey); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("error starting server")
			}
		} else if selfTLS {
			log.Warn().Msgf("using auto self-signed certificate for TLS. This is not recommended for production. Please consider using your own certificates.")
			caConfig := selfca.Certificate{
				IsCA:      true,
				KeySize:   2048,
				NotBefore: time.Now(),
				// 30 day self-signed cert.
				NotAfter: time.Now().Add(time.Duration(30*24) * time.Hour),
			}

			// generating the certificate
			certificate, key, err := selfca.GenerateCertificate(caConfig)
			if err != nil {
				log.Fatal().Err(err).Msg("error generating auto self-signed certificate")
			}

			pair, err := tls.X509KeyPair(
				pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certificate}),
				pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}),
			)
			if err != nil {
				log.Fatal().Err(err).Msg("error using auto self-signed certificate")
			}

			srv.TLSConfig = &tls.Config{
				Certificates: []tls.Certificate{pair},
			}

			// service connections with tls config, no need to pass files
			if err = srv.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("error starting server")
			}
		} else {
			log.Fatal().Msg("server requires TLS configuration to start. " +
				"Please use either the --self-tls flag or set a certificate with the --tls-cert and --tls-key flags")
		}
	}()

	gracefulShutdown(srv)
	return nil
}

func gracefulShutdown(srv *http.Server) {
	// Wait for interrupt signal to gracefully shut down the server with
	// a timeout.
	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be a catch, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("server Shutdown.")
	}

	<-ctx.Done()
	log.Info().Msg("server exiting...")
}
