package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkabeya/grove/apps/api/echo"
	"github.com/mkabeya/grove/core"
	"github.com/mkabeya/grove/core/note"
	"github.com/mkabeya/grove/core/pomodoro"
	"github.com/mkabeya/grove/core/quiz"
	"github.com/mkabeya/grove/core/stats"
	"github.com/mkabeya/grove/services/grader/openai"
	"github.com/mkabeya/grove/services/logger"
	"github.com/mkabeya/grove/storage/database"
	"github.com/mkabeya/grove/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.LoadConfig()
	errAndDie(std, err)

	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up DB
	db, err := database.Open(conf)
	errAndDie(std, err)
	defer db.Close()
	errAndDie(std, database.Migrate(db.DB, "storage/database/migrations"))

	// set up repos & services
	noteSvc := note.NewService(sqlxrepos.NewNoteRepository(db))
	statsRepo := sqlxrepos.NewStatsRepository(db)
	quizSvc := quiz.NewService(sqlxrepos.NewQuizRepository(db), openaigrader.NewClient(conf.Grader))
	pomodoroSvc := pomodoro.NewService(sqlxrepos.NewSessionRepository(db), statsRepo)
	statsSvc := stats.NewService(statsRepo)

	validate, translator := core.NewValidator()

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	app := echoapi.NewServer(
		conf.Server.Address(),
		shutdown,
		&echoapi.Deps{
			Conf:        conf,
			Logger:      logger,
			TokenAuth:   echoapi.NewTokenAuth(conf),
			Validate:    validate,
			Translator:  translator,
			NoteSvc:     noteSvc,
			QuizSvc:     quizSvc,
			PomodoroSvc: pomodoroSvc,
			StatsSvc:    statsSvc,
		},
	)
	go app.Start()

	<-shutdown
	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		std.Printf("graceful shutdown failed: %v", err)
	}
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
