package main

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/definitions"
	"github.com/typegraph/typegraph/internal/prettyprinter"
	"github.com/typegraph/typegraph/internal/session"
)

const exportSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS ancestors (
	session_id TEXT NOT NULL,
	type_name  TEXT NOT NULL,
	side       TEXT NOT NULL,
	position   INTEGER NOT NULL,
	entry_kind TEXT NOT NULL,
	ancestor   TEXT NOT NULL,
	PRIMARY KEY (session_id, type_name, side, position)
);
CREATE TABLE IF NOT EXISTS definitions (
	session_id TEXT NOT NULL,
	type_name  TEXT NOT NULL,
	kind       TEXT NOT NULL,
	method     TEXT NOT NULL,
	owner      TEXT NOT NULL,
	signature  TEXT NOT NULL,
	PRIMARY KEY (session_id, type_name, kind, method)
);
`

// exportReport writes resolved ancestor chains and method tables into a
// sqlite database for downstream checkers.
func exportReport(path string, report *session.Report) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(exportSchema); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT OR REPLACE INTO sessions (id) VALUES (?)`, report.SessionID); err != nil {
		return err
	}

	for _, res := range report.Results() {
		if res.Err != nil {
			continue
		}
		if err := exportChain(tx, report.SessionID, res, "instance"); err != nil {
			return err
		}
		if err := exportChain(tx, report.SessionID, res, "singleton"); err != nil {
			return err
		}
		if err := exportDefs(tx, report.SessionID, res); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func exportChain(tx *sql.Tx, sessionID string, res session.TypeResult, side string) error {
	chain := res.InstanceAncestors
	if side == "singleton" {
		chain = res.SingletonAncestors
	}
	for i, entry := range chain {
		_, err := tx.Exec(
			`INSERT INTO ancestors (session_id, type_name, side, position, entry_kind, ancestor)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			sessionID, res.Name.String(), side, i, entry.Kind.String(), prettyprinter.Entry(entry),
		)
		if err != nil {
			return fmt.Errorf("export ancestors of %s: %w", res.Name, err)
		}
	}
	return nil
}

func exportDefs(tx *sql.Tx, sessionID string, res session.TypeResult) error {
	tables := []struct {
		kind decl.MethodKind
		defs map[string]*definitions.Definition
	}{
		{decl.InstanceKind, res.InstanceMethods},
		{decl.SingletonKind, res.SingletonMethods},
	}

	for _, table := range tables {
		for name, def := range table.defs {
			sigs := make([]string, len(def.Overloads))
			for i, sig := range def.Overloads {
				sigs[i] = sig.String()
			}
			_, err := tx.Exec(
				`INSERT INTO definitions (session_id, type_name, kind, method, owner, signature)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				sessionID, res.Name.String(), table.kind.String(), name,
				def.Owner.String(), strings.Join(sigs, " | "),
			)
			if err != nil {
				return fmt.Errorf("export definitions of %s: %w", res.Name, err)
			}
		}
	}
	return nil
}
