package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/soramame/partstream"
	httpform "github.com/soramame/partstream/http"
)

const uploadDir = "uploads"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create upload dir")
	}

	r := chi.NewRouter()
	r.Post("/upload", uploadHandler)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	srv := &http.Server{Addr: ":8080", Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return srv.Shutdown(context.Background())
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func uploadHandler(w http.ResponseWriter, r *http.Request) {
	parser, err := httpform.NewParser(r,
		partstream.WithMaxFiles(4),
		partstream.WithFileSize(32*partstream.MB),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		mu    sync.Mutex
		saved []string
	)
	result, err := parser.Parse(func(src io.Reader, info partstream.FileInfo) error {
		name := uuid.NewString() + filepath.Ext(info.Filename)

		dst, err := os.Create(filepath.Join(uploadDir, name))
		if err != nil {
			return err
		}
		defer dst.Close()

		if _, err := io.Copy(dst, src); err != nil {
			return err
		}

		mu.Lock()
		saved = append(saved, name)
		mu.Unlock()
		return nil
	})
	if err != nil {
		var limitErr *partstream.LimitError
		if errors.As(err, &limitErr) {
			http.Error(w, limitErr.Error(), limitErr.StatusCode())
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	comment, _ := result.Value("comment")
	log.Info().Strs("files", saved).Str("comment", comment).Msg("upload complete")

	w.WriteHeader(http.StatusCreated)
}
