package sqlite

import (
	"database/sql"
	"encoding/json"

	"lcatrace/internal/domain"
	"lcatrace/internal/ports"
)

// storeTx implements ports.GraphWriter
type storeTx struct {
	tx *sql.Tx
}

// Ensure storeTx implements GraphWriter
var _ ports.GraphWriter = (*storeTx)(nil)

// UpsertActivity inserts or updates an activity
func (t *storeTx) UpsertActivity(activity *domain.Activity) error {
	categories := activity.Categories
	if categories == nil {
		categories = []string{}
	}
	encoded, err := json.Marshal(categories)
	if err != nil {
		return err
	}

	activityType := activity.Type
	if activityType == "" {
		activityType = domain.ActivityTypeProcess
	}

	_, err = t.tx.Exec(`
		INSERT OR REPLACE INTO activities (`+activityColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, activity.Key.Database, activity.Key.Code, activity.Name, activity.Unit,
		activity.Location, string(encoded), string(activityType))
	return err
}

// ReplaceExchanges removes the activity's exchanges and inserts the given
// ones in order
func (t *storeTx) ReplaceExchanges(output domain.Key, exchanges []domain.Exchange) error {
	if _, err := t.tx.Exec(`
		DELETE FROM exchanges WHERE output_database = ? AND output_code = ?
	`, output.Database, output.Code); err != nil {
		return err
	}

	stmt, err := t.tx.Prepare(`
		INSERT INTO exchanges (output_database, output_code, input_database, input_code, amount, type)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range exchanges {
		if _, err := stmt.Exec(output.Database, output.Code, e.Input.Database, e.Input.Code, e.Amount, string(e.Role)); err != nil {
			return err
		}
	}
	return nil
}

// UpsertMethod registers a method, replacing any previous factors
func (t *storeTx) UpsertMethod(method domain.Method, factors map[domain.Key]float64) error {
	if _, err := t.tx.Exec(`INSERT OR IGNORE INTO methods (name) VALUES (?)`, string(method)); err != nil {
		return err
	}
	if _, err := t.tx.Exec(`DELETE FROM characterization WHERE method = ?`, string(method)); err != nil {
		return err
	}

	for flow, factor := range factors {
		if _, err := t.tx.Exec(`
			INSERT INTO characterization (method, flow_database, flow_code, factor)
			VALUES (?, ?, ?, ?)
		`, string(method), flow.Database, flow.Code, factor); err != nil {
			return err
		}
	}
	return nil
}

// Commit commits the transaction
func (t *storeTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *storeTx) Rollback() error {
	return t.tx.Rollback()
}
