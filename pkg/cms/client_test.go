package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL + "/api")
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := fmt.Fprint(w, body)
	require.NoError(t, err)
}

func TestCollection_List(t *testing.T) {
	testCases := map[string]struct {
		handler   http.HandlerFunc
		expect    []Service
		expectErr string
	}{
		"decodes_envelope_payload": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusOK,
					`{"success":true,"services":[{"_id":"s1","title":"Roofing","description":"Flat and pitched"}]}`)
			},
			expect: []Service{{ID: "s1", Title: "Roofing", Description: "Flat and pitched"}},
		},
		"missing_payload_member_means_empty": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusOK, `{"success":true}`)
			},
			expect: []Service{},
		},
		"server_message_wins_over_fallback": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusBadRequest, `{"success":false,"message":"database offline"}`)
			},
			expectErr: "database offline",
		},
		"success_false_despite_http_ok": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusOK, `{"success":false,"message":"nothing to see"}`)
			},
			expectErr: "nothing to see",
		},
		"non_json_body_falls_back_to_fixed_message": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = fmt.Fprint(w, "<html>Bad Gateway</html>")
			},
			expectErr: "Failed to load services",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/api/services/all", tc.handler)
			client := newTestClient(t, mux)

			items, err := client.Services().List(context.Background())
			if tc.expectErr != "" {
				require.Error(t, err)
				require.Equal(t, tc.expectErr, err.Error())
				return
			}

			require.NoError(t, err)
			require.NotNil(t, items)
			require.Equal(t, tc.expect, items)
		})
	}
}

func TestCollection_ListCarriesStatusCode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/services/all", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, `{"success":false,"message":"Not signed in"}`)
	})
	client := newTestClient(t, mux)

	_, err := client.Services().List(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Not signed in", apiErr.Message)
}

func TestCollection_CreateMultipart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/services/create", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		require.Equal(t, "Renovation", r.FormValue("title"))
		require.Equal(t, "Full interior refits", r.FormValue("description"))

		file, header, err := r.FormFile("icon")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "icon.png", header.Filename)

		writeJSON(t, w, http.StatusCreated,
			`{"success":true,"message":"Service created","service":{"_id":"s9","title":"Renovation","description":"Full interior refits","icon":"/uploads/icon.png"}}`)
	})
	client := newTestClient(t, mux)

	record, err := client.Services().Create(context.Background(), Payload{
		Fields: map[string]any{"title": "Renovation", "description": "Full interior refits"},
		Files:  []Attachment{{Field: "icon", Filename: "icon.png", Content: []byte{0x89, 'P', 'N', 'G'}}},
	})
	require.NoError(t, err)
	require.Equal(t, "s9", record.ID)
	require.Equal(t, "/uploads/icon.png", record.Icon)
}

func TestCollection_UpdateSendsJSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/features/update/f1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, map[string]any{"title": "On-time delivery"}, body)

		writeJSON(t, w, http.StatusOK,
			`{"success":true,"feature":{"_id":"f1","title":"On-time delivery","description":"We keep schedules"}}`)
	})
	client := newTestClient(t, mux)

	record, err := client.Features().Update(context.Background(), "f1", Payload{
		Fields: map[string]any{"title": "On-time delivery"},
	})
	require.NoError(t, err)
	require.Equal(t, "On-time delivery", record.Title)
}

func TestCollection_Delete(t *testing.T) {
	t.Run("confirmed_by_server", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/jobs/j1", func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			writeJSON(t, w, http.StatusOK, `{"success":true,"message":"Job deleted"}`)
		})
		client := newTestClient(t, mux)

		require.NoError(t, client.Jobs().Delete(context.Background(), "j1"))
	})

	t.Run("refused_by_server", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/jobs/j1", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusNotFound, `{"success":false,"message":"Job not found"}`)
		})
		client := newTestClient(t, mux)

		err := client.Jobs().Delete(context.Background(), "j1")
		require.Error(t, err)
		require.Equal(t, "Job not found", err.Error())
	})
}

func TestCareers_MutationsUnsupported(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())

	_, err := client.Careers().Create(context.Background(), Payload{})
	require.ErrorIs(t, err, ErrUnsupported)

	_, err = client.Careers().Update(context.Background(), "a1", Payload{})
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestProjects_Get(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects/riverside-mall", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK,
			`{"success":true,"project":{"_id":"p1","slug":"riverside-mall","title":"Riverside Mall","description":"Retail complex","status":"Ongoing"}}`)
	})
	mux.HandleFunc("/api/projects/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, `{"success":false,"message":"Project not found"}`)
	})
	client := newTestClient(t, mux)

	t.Run("known_slug", func(t *testing.T) {
		project, exists, err := client.Projects().Get(context.Background(), "riverside-mall")
		require.NoError(t, err)
		require.True(t, exists)
		require.Equal(t, "Riverside Mall", project.Title)
	})

	t.Run("unknown_slug_is_not_an_error", func(t *testing.T) {
		_, exists, err := client.Projects().Get(context.Background(), "no-such-project")
		require.NoError(t, err)
		require.False(t, exists)
	})
}

func TestAuth_SessionCookieRoundTrip(t *testing.T) {
	const sessionToken = "tok-123"

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "dana@buildcrest.test", creds.Email)

		http.SetCookie(w, &http.Cookie{Name: "token", Value: sessionToken, Path: "/", HttpOnly: true})
		writeJSON(t, w, http.StatusOK,
			`{"success":true,"user":{"_id":"u1","name":"Dana","email":"dana@buildcrest.test","role":"admin"}}`)
	})
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("token")
		if err != nil || cookie.Value != sessionToken {
			writeJSON(t, w, http.StatusUnauthorized, `{"success":false,"message":"Not signed in"}`)
			return
		}
		writeJSON(t, w, http.StatusOK,
			`{"success":true,"user":{"_id":"u1","name":"Dana","email":"dana@buildcrest.test","role":"admin"}}`)
	})
	client := newTestClient(t, mux)

	// Before sign-in the session check must read as anonymous.
	_, ok := client.Auth().Me(context.Background())
	require.False(t, ok)

	user, err := client.Auth().SignIn(context.Background(), Credentials{Email: "dana@buildcrest.test", Password: "hunter2"})
	require.NoError(t, err)
	require.Equal(t, "admin", user.Role)

	// The jar now forwards the cookie without any explicit header work.
	user, ok = client.Auth().Me(context.Background())
	require.True(t, ok)
	require.Equal(t, "Dana", user.Name)
}

func TestAuth_SignInFailureUsesServerMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, `{"success":false,"message":"Invalid email or password"}`)
	})
	client := newTestClient(t, mux)

	_, err := client.Auth().SignIn(context.Background(), Credentials{Email: "dana@buildcrest.test", Password: "wrong"})
	require.Error(t, err)
	require.Equal(t, "Invalid email or password", err.Error())
}

func TestClient_MetricsCountRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/services/all", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, `{"success":true,"services":[]}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	registry := prometheus.NewPedanticRegistry()
	client, err := NewClient(server.URL+"/api", WithMetrics(NewMetrics(registry)))
	require.NoError(t, err)

	_, err = client.Services().List(context.Background())
	require.NoError(t, err)

	families, err := registry.Gather()
	require.NoError(t, err)

	labels := func(metric *dto.Metric) map[string]string {
		out := map[string]string{}
		for _, pair := range metric.GetLabel() {
			out[pair.GetName()] = pair.GetValue()
		}
		return out
	}

	found := false
	for _, mf := range families {
		if mf.GetName() != "sitectl_api_requests_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			require.Equal(t,
				map[string]string{"kind": "services", "operation": "list", "outcome": "ok"},
				labels(metric))
			require.Equal(t, float64(1), metric.GetCounter().GetValue())
			found = true
		}
	}
	require.True(t, found, "request counter was never observed")
}

func TestAuth_SignOut(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		writeJSON(t, w, http.StatusOK, `{"success":true,"message":"Logged out"}`)
	})
	client := newTestClient(t, mux)

	require.NoError(t, client.Auth().SignOut(context.Background()))
}
