// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dto

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zintix-labs/tosslab/errs"
	"github.com/zintix-labs/tosslab/match"
)

func TestDecodeFilterGET(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/report?format=odi&year=2019&team=England", nil)
	f, err := DecodeFilter(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Format == nil || *f.Format != match.ODI || f.Year != 2019 || f.Team != "England" {
		t.Fatalf("unexpected filter: %+v", f)
	}
}

func TestDecodeFilterAll(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/report?format=all&year=ALL&team=all", nil)
	f, err := DecodeFilter(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.IsZero() {
		t.Fatalf("all should keep everything: %+v", f)
	}
}

func TestDecodeFilterRejects(t *testing.T) {
	for _, q := range []string{"format=Hundred", "year=twenty", "year=-1"} {
		r := httptest.NewRequest(http.MethodGet, "/v1/report?"+q, nil)
		_, err := DecodeFilter(r)
		if err == nil {
			t.Fatalf("%s: expected error", q)
		}
		if errs.Level(err) != errs.Warn {
			t.Fatalf("%s: want warn, got %v", q, errs.Level(err))
		}
	}
}

func TestDecodeAnalyzeRequestPOST(t *testing.T) {
	body := `{"matches":[{"id":1,"date":"2020-01-05","format":"T20","venue":"MCG, Melbourne",
	"team1":"Australia","team2":"India","tossWinner":"India","tossDecision":"field","matchWinner":"India"}],"format":"T20"}`
	r := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(body))
	req, err := DecodeAnalyzeRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.Matches) != 1 || req.Matches[0].TossDecision != match.Field {
		t.Fatalf("unexpected request: %+v", req)
	}
	f, err := req.Parse()
	if err != nil || f.Format == nil || *f.Format != match.T20 {
		t.Fatalf("unexpected filter %+v err=%v", f, err)
	}
}

func TestDecodeAnalyzeRequestRejects(t *testing.T) {
	cases := map[string]string{
		"unknown field": `{"matches":[],"unknown":true}`,
		"bad enum":      `{"matches":[{"format":"Hundred"}]}`,
		"no matches":    `{}`,
		"not json":      `matches`,
	}
	for name, body := range cases {
		r := httptest.NewRequest(http.MethodPost, "/v1/analyze", bytes.NewReader([]byte(body)))
		if _, err := DecodeAnalyzeRequest(r); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	r := httptest.NewRequest(http.MethodGet, "/v1/analyze", nil)
	if _, err := DecodeAnalyzeRequest(r); err == nil {
		t.Fatalf("GET should be rejected")
	}
}
