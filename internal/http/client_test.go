package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/quran-reels/internal/model"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL + "/")
}

func TestClient_Headers(t *testing.T) {
	var gotUA, gotSession string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotSession = r.Header.Get(SessionHeader)
		w.Write([]byte(`{"availableFonts":[]}`))
	})

	if _, err := client.Config(context.Background()); err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if gotUA != "QuranReelsConsole" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotSession == "" || gotSession != client.SessionID() {
		t.Errorf("session header = %q, want %q", gotSession, client.SessionID())
	}
}

func TestClient_Config(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != RouteConfig || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"availableFonts":["Amiri.ttf"],"templates":["normal","kids"],"reciters":{"العفاسي":"Alafasy_64kbps"}}`))
	})

	cfg, err := client.Config(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.AvailableFonts) != 1 || cfg.AvailableFonts[0] != "Amiri.ttf" {
		t.Errorf("AvailableFonts = %v", cfg.AvailableFonts)
	}
	if len(cfg.Templates) != 2 || cfg.Reciters["العفاسي"] != "Alafasy_64kbps" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestClient_Progress(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"is_running":false,"is_complete":true,"percent":100,"status":"done","log":["x"],"output_path":"C:\\out\\video\\clip7.mp4","error":null}`))
	})

	snap, err := client.Progress(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if snap.PreviewPath() != "/outputs/video/clip7.mp4" {
		t.Errorf("PreviewPath() = %q", snap.PreviewPath())
	}
}

func TestClient_ProgressStatusError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})

	_, err := client.Progress(context.Background())
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("Progress() error = %v, want ErrStatus", err)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadGateway {
		t.Errorf("StatusError = %+v", se)
	}
}

func TestClient_Generate(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantSuccess bool
		wantMessage string
	}{
		{"accepted", http.StatusOK, `{"success":true,"message":"started"}`, false, true, ""},
		{"busy", http.StatusBadRequest, `{"error":"already running"}`, false, false, "already running"},
		{"refused with ok status", http.StatusOK, `{"success":false}`, false, false, ""},
		{"error status with success flag", http.StatusInternalServerError, `{"success":true}`, false, false, ""},
		{"not json", http.StatusInternalServerError, `<html>oops</html>`, true, false, ""},
		{"broken json", http.StatusOK, `{"success":`, true, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got model.GenerationRequest
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != RouteGenerate || r.Method != http.MethodPost {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				if ct := r.Header.Get("Content-Type"); ct != "application/json" {
					t.Errorf("Content-Type = %q", ct)
				}
				json.NewDecoder(r.Body).Decode(&got)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			req := &model.GenerationRequest{Reciter: "Husary_64kbps", Surah: 112, StartAyah: 1, EndAyah: 4}
			resp, err := client.Generate(context.Background(), req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Generate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if resp.Success != tt.wantSuccess || resp.Error != tt.wantMessage {
				t.Errorf("Generate() = %+v", resp)
			}
			if got != *req {
				t.Errorf("server got %+v, want %+v", got, *req)
			}
		})
	}
}

func TestClient_Preview(t *testing.T) {
	status := http.StatusOK
	var got model.PreviewRequest
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(status)
		w.Write([]byte(`not inspected`))
	})

	req := &model.PreviewRequest{Reciter: "Alafasy_64kbps", Surah: 1, Ayah: 2, Template: "kids"}
	if err := client.Preview(context.Background(), req); err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if got != *req {
		t.Errorf("server got %+v", got)
	}

	status = http.StatusInternalServerError
	if err := client.Preview(context.Background(), req); !errors.Is(err, ErrStatus) {
		t.Errorf("Preview() error = %v, want ErrStatus", err)
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := NewClient(srv.URL)
	srv.Close()

	if _, err := client.Progress(context.Background()); err == nil || errors.Is(err, ErrStatus) {
		t.Errorf("Progress() error = %v, want transport error", err)
	}
}

func TestClient_RefreshFonts(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != RouteRefreshFonts || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"fontCount":2,"fonts":["a.ttf","b.ttf"]}`))
	})

	resp, err := client.RefreshFonts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.FontCount != 2 || len(resp.Fonts) != 2 {
		t.Errorf("RefreshFonts() = %+v", resp)
	}
}

func TestClient_DownloadFile(t *testing.T) {
	payload := []byte("not really an mp4")
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/outputs/video/clip7.mp4" {
			http.NotFound(w, r)
			return
		}
		w.Write(payload)
	})

	dest := filepath.Join(t.TempDir(), "clip7.mp4")
	var lastWritten int64
	err := client.DownloadFile(context.Background(), client.OutputURL("clip7.mp4"), dest, func(written, total int64) {
		lastWritten = written
	})
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(payload) {
		t.Errorf("file content = %q", data)
	}
	if lastWritten != int64(len(payload)) {
		t.Errorf("last progress = %d, want %d", lastWritten, len(payload))
	}

	size, err := client.GetFileSize(context.Background(), client.OutputURL("clip7.mp4"))
	if err != nil || size != int64(len(payload)) {
		t.Errorf("GetFileSize() = %d, %v", size, err)
	}

	err = client.DownloadFile(context.Background(), client.OutputURL("missing.mp4"), dest, nil)
	if !errors.Is(err, ErrStatus) {
		t.Errorf("DownloadFile(missing) error = %v, want ErrStatus", err)
	}
}

func TestClient_URLs(t *testing.T) {
	client := NewClient("http://127.0.0.1:5000/")
	if got := client.URL(RouteProgress); got != "http://127.0.0.1:5000/api/progress" {
		t.Errorf("URL() = %q", got)
	}
	if got := client.OutputURL("clip 7.mp4"); got != "http://127.0.0.1:5000/outputs/video/clip%207.mp4" {
		t.Errorf("OutputURL() = %q", got)
	}
}
