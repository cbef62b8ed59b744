package database

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// historyConnsPerWorker bounds open connections per solver worker; each solve
// writes one history row.
const historyConnsPerWorker = 2

// Connect establishes a connection to PostgreSQL sized for solve history
// writes from solverWorkers concurrent solvers.
func Connect(databaseURL string, solverWorkers int) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	maxOpen, maxIdle := poolSize(solverWorkers)
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func poolSize(solverWorkers int) (maxOpen, maxIdle int) {
	maxOpen = max(solverWorkers, 1)*historyConnsPerWorker + 2
	maxIdle = max(maxOpen/2, 1)
	return maxOpen, maxIdle
}
