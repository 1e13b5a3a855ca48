package services

import "testing"

func TestBucketPublicURL(t *testing.T) {
	bs := &bucketService{bucketName: "catastro-fotos"}
	got := bs.GetPublicURL("/lote_00012345/fachada.jpg")
	want := "https://storage.googleapis.com/catastro-fotos/lote_00012345/fachada.jpg"
	if got != want {
		t.Errorf("GetPublicURL = %q, want %q", got, want)
	}

	cdn := &bucketService{bucketName: "catastro-fotos", cdnDomain: "fotos.municatastro.gob.pe"}
	got = cdn.GetPublicURL("lote_00012345/fachada.jpg")
	want = "https://fotos.municatastro.gob.pe/lote_00012345/fachada.jpg"
	if got != want {
		t.Errorf("GetPublicURL with CDN = %q, want %q", got, want)
	}
}

func TestBucketKeyFromURL(t *testing.T) {
	bs := &bucketService{bucketName: "catastro-fotos", cdnDomain: "fotos.municatastro.gob.pe"}

	cases := []struct {
		url  string
		want string
	}{
		{"https://storage.googleapis.com/catastro-fotos/lote_1/f.jpg", "lote_1/f.jpg"},
		{"https://fotos.municatastro.gob.pe/lote_1/f.jpg", "lote_1/f.jpg"},
		{"https://storage.googleapis.com/otro-bucket/lote_1/f.jpg", ""},
		{"https://fotos.example.com/externa.jpg", ""},
		{"no es una url", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := bs.KeyFromURL(tc.url); got != tc.want {
			t.Errorf("KeyFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}

	if bs.IsManagedURL("https://fotos.example.com/externa.jpg") {
		t.Error("external URL reported as managed")
	}
	if !bs.IsManagedURL("https://storage.googleapis.com/catastro-fotos/lote_1/f.jpg") {
		t.Error("bucket URL not reported as managed")
	}
}

func TestBucketNameOrDefault(t *testing.T) {
	if got := bucketNameOrDefault("catastro-prod"); got != "catastro-prod" {
		t.Errorf("bucketNameOrDefault = %q, want configured name", got)
	}
	if got := bucketNameOrDefault("  "); got != "catastro-fotos" {
		t.Errorf("bucketNameOrDefault empty = %q, want catastro-fotos", got)
	}
}

func TestContentTypeForKey(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"lote_1/fachada.jpg", "image/jpeg"},
		{"lote_1/plano.PNG", "image/png"},
		{"lote_1/interior.webp", "image/webp"},
		{"lote_1/sin_extension", ""},
	}
	for _, tc := range cases {
		if got := contentTypeForKey(tc.key); got != tc.want {
			t.Errorf("contentTypeForKey(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestEsURLExterna(t *testing.T) {
	if !esURLExterna("https://fotos.example.com/x.jpg") || !esURLExterna("HTTP://a/b") {
		t.Error("http(s) URL not detected as external")
	}
	if esURLExterna("") || esURLExterna("lote_1/f.jpg") || esURLExterna("ftp://x/y") {
		t.Error("non-http value detected as external")
	}
}
