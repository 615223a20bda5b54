package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/propmatch/pkg/address"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a local API server for parse/match/lookup",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		mux := http.NewServeMux()

		mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		mux.HandleFunc("POST /v1/parse", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Address string `json:"address"`
				Suburb  string `json:"suburb"`
				City    string `json:"city"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
				return
			}
			writeJSON(w, http.StatusOK, address.ParseWithHints(req.Address, req.Suburb, req.City))
		})

		mux.HandleFunc("POST /v1/match", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Query     string `json:"query"`
				Candidate string `json:"candidate"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
				return
			}
			verdict := address.Match(address.Parse(req.Query), address.Parse(req.Candidate))
			writeJSON(w, http.StatusOK, verdict)
		})

		mux.HandleFunc("POST /v1/lookup", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Address string `json:"address"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
				return
			}
			if req.Address == "" {
				http.Error(w, `{"error":"address is required"}`, http.StatusBadRequest)
				return
			}

			result, err := env.Lookup.Lookup(r.Context(), req.Address)
			if err != nil {
				zap.L().Warn("lookup request failed",
					zap.String("address", req.Address),
					zap.Error(err),
				)
				http.Error(w, `{"error":"address could not be parsed"}`, http.StatusUnprocessableEntity)
				return
			}
			writeJSON(w, http.StatusOK, result)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
