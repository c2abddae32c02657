package db

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/podscribe/backend/internal/auth"
	"github.com/podscribe/backend/internal/db/models"
)

type Database struct {
	db *sql.DB
}

func NewSQLite(path string) (*Database, error) {
	sqlDB, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	d := &Database{db: sqlDB}
	if err := d.migrate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Database) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'viewer',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		file_path TEXT NOT NULL,
		params TEXT NOT NULL,
		progress REAL DEFAULT 0,
		result TEXT,
		error TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		started_at DATETIME,
		completed_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS uploads (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		file_path TEXT NOT NULL,
		size_bytes INTEGER NOT NULL DEFAULT 0,
		duration REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transcripts (
		id TEXT PRIMARY KEY,
		upload_id TEXT NOT NULL,
		language TEXT NOT NULL DEFAULT 'unknown',
		text TEXT NOT NULL DEFAULT '',
		payload TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (upload_id) REFERENCES uploads(id)
	);

	CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		transcript_id TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		style TEXT NOT NULL DEFAULT 'long',
		language TEXT NOT NULL DEFAULT 'en',
		content TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (transcript_id) REFERENCES transcripts(id)
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

func (d *Database) EnsureAdmin(username, password string) error {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM users WHERE role = 'admin'").Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(
		"INSERT INTO users (username, password, role) VALUES (?, ?, 'admin')",
		username, hash,
	)
	return err
}

func (d *Database) GetUserByUsername(username string) (*models.User, error) {
	u := &models.User{}
	err := d.db.QueryRow(
		"SELECT id, username, password, role, created_at, updated_at FROM users WHERE username = ?",
		username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (d *Database) GetUserByID(id int64) (*models.User, error) {
	u := &models.User{}
	err := d.db.QueryRow(
		"SELECT id, username, password, role, created_at, updated_at FROM users WHERE id = ?",
		id,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUpload records a stored audio file
func (d *Database) CreateUpload(u *models.Upload) error {
	_, err := d.db.Exec(`
		INSERT INTO uploads (id, filename, file_path, size_bytes, duration, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Filename, u.FilePath, u.SizeBytes, u.Duration, time.Now(),
	)
	return err
}

func (d *Database) GetUpload(id string) (*models.Upload, error) {
	u := &models.Upload{}
	err := d.db.QueryRow(
		"SELECT id, filename, file_path, size_bytes, duration, created_at FROM uploads WHERE id = ?",
		id,
	).Scan(&u.ID, &u.Filename, &u.FilePath, &u.SizeBytes, &u.Duration, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (d *Database) ListUploads() ([]*models.Upload, error) {
	rows, err := d.db.Query(
		"SELECT id, filename, file_path, size_bytes, duration, created_at FROM uploads ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uploads []*models.Upload
	for rows.Next() {
		u := &models.Upload{}
		if err := rows.Scan(&u.ID, &u.Filename, &u.FilePath, &u.SizeBytes, &u.Duration, &u.CreatedAt); err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}
	return uploads, nil
}

func (d *Database) DeleteUpload(id string) error {
	_, err := d.db.Exec("DELETE FROM uploads WHERE id = ?", id)
	return err
}

// SaveTranscript persists a pipeline result
func (d *Database) SaveTranscript(t *models.Transcript) error {
	_, err := d.db.Exec(`
		INSERT INTO transcripts (id, upload_id, language, text, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.UploadID, t.Language, t.Text, string(t.Payload), time.Now(),
	)
	return err
}

func (d *Database) GetTranscript(id string) (*models.Transcript, error) {
	t := &models.Transcript{}
	var payload string
	err := d.db.QueryRow(
		"SELECT id, upload_id, language, text, payload, created_at FROM transcripts WHERE id = ?",
		id,
	).Scan(&t.ID, &t.UploadID, &t.Language, &t.Text, &payload, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Payload = []byte(payload)
	return t, nil
}

func (d *Database) ListTranscripts() ([]*models.Transcript, error) {
	rows, err := d.db.Query(
		"SELECT id, upload_id, language, text, payload, created_at FROM transcripts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transcripts []*models.Transcript
	for rows.Next() {
		t := &models.Transcript{}
		var payload string
		if err := rows.Scan(&t.ID, &t.UploadID, &t.Language, &t.Text, &payload, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Payload = []byte(payload)
		transcripts = append(transcripts, t)
	}
	return transcripts, nil
}

func (d *Database) DeleteTranscript(id string) error {
	_, err := d.db.Exec("DELETE FROM transcripts WHERE id = ?", id)
	return err
}

// SaveArticle persists generated or translated content
func (d *Database) SaveArticle(a *models.Article) error {
	_, err := d.db.Exec(`
		INSERT INTO articles (id, transcript_id, title, style, language, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.TranscriptID, a.Title, a.Style, a.Language, a.Content, time.Now(),
	)
	return err
}

func (d *Database) GetArticle(id string) (*models.Article, error) {
	a := &models.Article{}
	err := d.db.QueryRow(
		"SELECT id, transcript_id, title, style, language, content, created_at FROM articles WHERE id = ?",
		id,
	).Scan(&a.ID, &a.TranscriptID, &a.Title, &a.Style, &a.Language, &a.Content, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (d *Database) ListArticles(transcriptID string) ([]*models.Article, error) {
	query := "SELECT id, transcript_id, title, style, language, content, created_at FROM articles"
	args := []interface{}{}
	if transcriptID != "" {
		query += " WHERE transcript_id = ?"
		args = append(args, transcriptID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		a := &models.Article{}
		if err := rows.Scan(&a.ID, &a.TranscriptID, &a.Title, &a.Style, &a.Language, &a.Content, &a.CreatedAt); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func (d *Database) DeleteArticle(id string) error {
	_, err := d.db.Exec("DELETE FROM articles WHERE id = ?", id)
	return err
}

// GetSetting returns a setting value by key, or defaultVal if not found
func (d *Database) GetSetting(key, defaultVal string) string {
	var val string
	err := d.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&val)
	if err != nil {
		return defaultVal
	}
	return val
}

// SetSetting upserts a setting
func (d *Database) SetSetting(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP`,
		key, value, value,
	)
	return err
}

// GetAllSettings returns all settings as a map
func (d *Database) GetAllSettings() (map[string]string, error) {
	rows, err := d.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		result[k] = v
	}
	return result, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// DB returns the underlying sql.DB for use by other packages (e.g., job queue)
func (d *Database) DB() *sql.DB {
	return d.db
}
