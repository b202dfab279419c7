package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"dropship-dashboard/internal/models"
)

const taskTimeLayout = "2006-01-02 15:04:05"

// SaveTask grava uma tarefa recém-agendada
func (db *DB) SaveTask(ctx context.Context, t *models.ScheduledTask) error {
	params, err := marshalMap(t.Params)
	if err != nil {
		return err
	}
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO scheduled_tasks (id, type, frequency, params, created_at, status)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			frequency = excluded.frequency,
			params = excluded.params,
			status = excluded.status`,
		t.ID, t.Type, t.Frequency, params, t.CreatedAt.Format(taskTimeLayout), string(t.Status),
	)
	return err
}

// UpdateTask registra o estado de execução de uma tarefa
func (db *DB) UpdateTask(ctx context.Context, t *models.ScheduledTask) error {
	result, err := marshalMap(t.LastResult)
	if err != nil {
		return err
	}
	var lastRun sql.NullString
	if t.LastRun != nil {
		lastRun = sql.NullString{String: t.LastRun.Format(taskTimeLayout), Valid: true}
	}
	res, err := db.conn.ExecContext(ctx,
		"UPDATE scheduled_tasks SET last_run = ?, status = ?, last_result = ?, error = ? WHERE id = ?",
		lastRun, string(t.Status), result, t.Error, t.ID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// ListTasks retorna todas as tarefas espelhadas, mais antigas primeiro
func (db *DB) ListTasks(ctx context.Context) ([]models.ScheduledTask, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, type, frequency, params, created_at, last_run, status, last_result, error FROM scheduled_tasks ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.ScheduledTask
	for rows.Next() {
		var t models.ScheduledTask
		var params, createdAt, status, result string
		var lastRun sql.NullString
		if err := rows.Scan(&t.ID, &t.Type, &t.Frequency, &params, &createdAt, &lastRun, &status, &result, &t.Error); err != nil {
			return nil, err
		}
		t.Status = models.TaskStatus(status)
		t.CreatedAt, _ = time.ParseInLocation(taskTimeLayout, createdAt, time.Local)
		if lastRun.Valid {
			if lr, err := time.ParseInLocation(taskTimeLayout, lastRun.String, time.Local); err == nil {
				t.LastRun = &lr
			}
		}
		// JSON inválido deixa o mapa vazio
		_ = json.Unmarshal([]byte(params), &t.Params)
		_ = json.Unmarshal([]byte(result), &t.LastResult)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func marshalMap(m map[string]any) (string, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
