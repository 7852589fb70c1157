// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth implements the session and recommendation client.
//
// The client checks whether a student is signed in (trust-on-presence: a
// stored student_id is the whole proof), fetches the student's profile with a
// recommend-service -> login-service -> local-record fallback chain, fetches
// course recommendations with a fixed fallback entry, tears the session down
// on logout, and probes both services for diagnostics.
//
// Every network failure is logged and degraded to a fallback value; only
// Login returns an error, because a failed sign-in has nothing to fall back to.
package auth

import (
	"context"
	"time"

	"coursemate/cli/internal/backend"
	apperrors "coursemate/cli/internal/errors"
	"coursemate/cli/internal/httperrors"
	"coursemate/cli/internal/logging"
	"coursemate/cli/internal/session"
)

// Options holds the client's fixed parameters.
type Options struct {
	// LoginPage is where the user is sent when signed out.
	LoginPage string
	// LogoutDelay is the pause between clearing the session and redirecting.
	LogoutDelay time.Duration
	// ProbePassword is sent to the login service during profile fallback.
	ProbePassword string
}

// Service centralizes the client operations against both services and the
// local session store.
type Service struct {
	sess  *session.Session
	nav   Navigator
	login backend.LoginAPI
	rec   backend.RecommendAPI
	opts  Options
}

// NewService wires a Service.
func NewService(store session.Store, nav Navigator, login backend.LoginAPI, rec backend.RecommendAPI, opts Options) *Service {
	if opts.LoginPage == "" {
		opts.LoginPage = "index.html"
	}
	return &Service{
		sess:  session.New(store),
		nav:   nav,
		login: login,
		rec:   rec,
		opts:  opts,
	}
}

// CheckLogin returns the stored student id. When none is stored it alerts the
// user, redirects to the login page and returns ok=false.
func (s *Service) CheckLogin(ctx context.Context) (string, bool) {
	id := s.sess.StudentID()
	if id == "" {
		logging.Info().Str("kind", string(apperrors.SessionMissing)).Msg("no student_id in session store")
		s.nav.Alert("⛔ Please login first!")
		s.nav.Redirect(s.opts.LoginPage)
		return "", false
	}
	logging.Debug().Str("student_id", id).Msg("student id from session store")
	return id, true
}

// StudentData returns the best available profile for id. It never fails:
//  1. recommendation service answers 2xx with JSON -> profile from the local record
//  2. login service confirms the student -> its payload, gaps filled locally
//  3. otherwise -> profile from the local record with defaults
func (s *Service) StudentData(ctx context.Context, id string) session.Profile {
	logging.Debug().Str("student_id", id).Msg("fetching student data")

	err := s.rec.Touch(ctx, id)
	if err == nil {
		logging.Debug().Msg("recommendation service answered; using local record")
		return s.sess.CachedProfile(id, session.SourceRecommender)
	}
	logFallback(err, "recommendation service unavailable, trying login service", s.rec.BaseURL())

	res, err := s.login.Login(ctx, id, s.opts.ProbePassword)
	switch {
	case err != nil:
		logFallback(err, "login service unavailable, using local record", s.login.BaseURL())
	case res.Success && res.Student != nil:
		p := fillMissing(profileFromStudent(res.Student), s.sess.CachedProfile(id, session.SourceLogin))
		logging.Debug().Str("student_id", p.ID).Msg("student data from login service")
		return p
	default:
		logging.Warn().Str("message", res.Message).Msg("login service did not confirm the student, using local record")
	}

	return s.sess.CachedProfile(id, session.SourceCache)
}

// ProfileFromRecommender asks only the recommendation service. On a 2xx answer
// it returns the profile built from the local record (the response body is not
// read); on any failure it returns ok=false.
func (s *Service) ProfileFromRecommender(ctx context.Context, id string) (session.Profile, bool) {
	if err := s.rec.Ping(ctx, id); err != nil {
		logFallback(err, "cannot get student data from recommendation service", s.rec.BaseURL())
		return session.Profile{}, false
	}
	logging.Debug().Msg("connected to recommendation service for student data")
	return s.sess.CachedProfile(id, session.SourceRecommender), true
}

// Recommendations returns the server's list for id, or the single fallback
// recommendation when the service fails in any way.
func (s *Service) Recommendations(ctx context.Context, id string) []backend.Recommendation {
	logging.Debug().Str("student_id", id).Msg("requesting recommendations")

	recs, err := s.rec.Recommend(ctx, id)
	if err == nil {
		logging.Debug().Int("count", len(recs)).Msg("recommendations received")
		return recs
	}
	logging.Error().
		Str("kind", string(apperrors.KindOf(err))).
		Str("error", logging.Mask(err.Error())).
		Msg("error fetching recommendations")
	logging.Warn().Msg("using sample recommendations")
	return FallbackRecommendations()
}

// Logout clears every session key, waits the logout delay and redirects to
// the login page. The redirect happens even when clearing failed or ctx is
// done; the returned error only reports store failures.
func (s *Service) Logout(ctx context.Context) error {
	logging.Info().Msg("logging out")
	err := s.sess.Clear()
	if err != nil {
		logging.Error().Err(err).Msg("could not clear every session key")
	}

	if d := s.opts.LogoutDelay; d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}
	s.nav.Redirect(s.opts.LoginPage)
	return err
}

// SessionRecord returns the raw session record.
func (s *Service) SessionRecord(ctx context.Context) session.Record {
	return s.sess.Record()
}

// Login signs id in with password and writes the session record from the
// login service's answer. A non-empty level overrides the student's level.
func (s *Service) Login(ctx context.Context, id, password, level string) (session.Profile, error) {
	res, err := s.login.Login(ctx, id, password)
	if err != nil {
		return session.Profile{}, err
	}
	if !res.Success || res.Student == nil {
		msg := res.Message
		if msg == "" {
			msg = "login service rejected the credentials"
		}
		return session.Profile{}, apperrors.New(apperrors.LoginRejected, msg)
	}

	p := profileFromStudent(res.Student)
	if p.ID == "" {
		p.ID = id
	}
	if level != "" {
		p.Level = level
	}
	rec := session.Record{
		StudentID: p.ID,
		Name:      p.Name,
		Major:     p.Major,
		GPA:       p.GPA,
		Level:     p.Level,
	}
	if err := s.sess.Save(rec); err != nil {
		return session.Profile{}, err
	}
	logging.Info().Str("student_id", p.ID).Msg("session record written")
	return p, nil
}

// profileFromStudent copies the login payload as-is; absent fields stay empty.
func profileFromStudent(st *backend.Student) session.Profile {
	return session.Profile{
		ID:     st.ID.String(),
		Name:   st.Name.String(),
		Major:  st.Major.String(),
		GPA:    st.GPA.String(),
		Level:  st.Level.String(),
		Source: session.SourceLogin,
	}
}

// fillMissing completes fields the login payload left out from the local
// record, so a profile never has an empty field.
func fillMissing(p, cached session.Profile) session.Profile {
	if p.ID == "" {
		p.ID = cached.ID
	}
	if p.Name == "" {
		p.Name = cached.Name
	}
	if p.Major == "" {
		p.Major = cached.Major
	}
	if p.GPA == "" {
		p.GPA = cached.GPA
	}
	if p.Level == "" {
		p.Level = cached.Level
	}
	return p
}

// logFallback records a degraded step with its error class.
func logFallback(err error, msg, baseURL string) {
	logging.Warn().
		Str("kind", string(apperrors.KindOf(err))).
		Str("class", string(httperrors.Classify(err))).
		Str("service", baseURL).
		Str("error", logging.Mask(err.Error())).
		Msg(msg)
}
