package db

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/podscribe/backend/internal/db/models"
)

func testDB(t *testing.T) *Database {
	t.Helper()
	d, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestEnsureAdminIdempotent(t *testing.T) {
	d := testDB(t)

	if err := d.EnsureAdmin("admin", "secret"); err != nil {
		t.Fatal(err)
	}
	// Second call must not create another admin or overwrite the password
	if err := d.EnsureAdmin("other", "changed"); err != nil {
		t.Fatal(err)
	}

	u, err := d.GetUserByUsername("admin")
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != "admin" {
		t.Errorf("role = %q", u.Role)
	}
	if _, err := d.GetUserByUsername("other"); err == nil {
		t.Error("second EnsureAdmin call must be a no-op")
	}
}

func TestUploadCRUD(t *testing.T) {
	d := testDB(t)

	up := &models.Upload{
		ID:        "up-1",
		Filename:  "episode.mp3",
		FilePath:  "/data/uploads/up-1.mp3",
		SizeBytes: 1024,
		Duration:  3600.5,
	}
	if err := d.CreateUpload(up); err != nil {
		t.Fatal(err)
	}

	got, err := d.GetUpload("up-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Filename != "episode.mp3" || got.Duration != 3600.5 {
		t.Errorf("got %+v", got)
	}

	list, err := d.ListUploads()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d uploads, want 1", len(list))
	}

	if err := d.DeleteUpload("up-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.GetUpload("up-1"); err == nil {
		t.Error("upload still present after delete")
	}
}

func TestTranscriptPayloadRoundTrip(t *testing.T) {
	d := testDB(t)

	payload := json.RawMessage(`{"success":true,"text":"hello","segments":[]}`)
	tr := &models.Transcript{
		ID:       "tr-1",
		UploadID: "up-1",
		Language: "en",
		Text:     "hello",
		Payload:  payload,
	}
	if err := d.SaveTranscript(tr); err != nil {
		t.Fatal(err)
	}

	got, err := d.GetTranscript("tr-1")
	if err != nil {
		t.Fatal(err)
	}
	if string(got.Payload) != string(payload) {
		t.Errorf("payload = %s", got.Payload)
	}
	if got.Language != "en" || got.Text != "hello" {
		t.Errorf("got %+v", got)
	}
}

func TestListArticlesFilter(t *testing.T) {
	d := testDB(t)

	for _, a := range []*models.Article{
		{ID: "a1", TranscriptID: "tr-1", Title: "One", Content: "x"},
		{ID: "a2", TranscriptID: "tr-1", Title: "Two", Content: "y"},
		{ID: "a3", TranscriptID: "tr-2", Title: "Three", Content: "z"},
	} {
		if err := d.SaveArticle(a); err != nil {
			t.Fatal(err)
		}
	}

	all, err := d.ListArticles("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("got %d articles, want 3", len(all))
	}

	filtered, err := d.ListArticles("tr-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 2 {
		t.Errorf("got %d articles for tr-1, want 2", len(filtered))
	}
}

func TestSettings(t *testing.T) {
	d := testDB(t)

	if got := d.GetSetting("missing", "fallback"); got != "fallback" {
		t.Errorf("GetSetting(missing) = %q", got)
	}

	if err := d.SetSetting("whisper_model", "whisper-1"); err != nil {
		t.Fatal(err)
	}
	if err := d.SetSetting("whisper_model", "large-v3"); err != nil {
		t.Fatal(err)
	}
	if got := d.GetSetting("whisper_model", ""); got != "large-v3" {
		t.Errorf("upsert result = %q", got)
	}

	all, err := d.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if all["whisper_model"] != "large-v3" {
		t.Errorf("GetAllSettings = %v", all)
	}
}
