package google

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/moneta-app/moneta/internal/config"
	"github.com/moneta-app/moneta/internal/rest"
	"github.com/moneta-app/moneta/pkg/user"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

const CallbackPath = "/api/integrations/google/auth/callback"

type googleAuthRedirect struct {
	RedirectUrl string `json:"redirectUrl"`
}

// ClientProvider returns an HTTP client authorized against Google on behalf of a user,
// or nil when the user has not connected a Google account.
type ClientProvider interface {
	Client(ctx context.Context, userId int) (*http.Client, error)
}

type GoogleAuth struct {
	repo        AuthRepository
	oauthConfig *oauth2.Config
}

func NewGoogleAuth(repo AuthRepository, cfg config.Application) *GoogleAuth {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientId,
		ClientSecret: cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.Host + CallbackPath,
		Scopes:       []string{calendar.CalendarEventsScope, calendar.CalendarReadonlyScope},
	}

	return &GoogleAuth{repo: repo, oauthConfig: oauthConfig}
}

// OAuthLogin godoc
// @Summary Start Google Calendar authorization
// @Description Returns the Google consent URL. After consent the browser is redirected to finalUrl with a success flag.
// @Tags Google
// @Produce json
// @Param finalUrl query string false "Where to send the browser after the callback"
// @Success 200 {object} googleAuthRedirect
// @Router /api/integrations/google/auth/login [get]
// @Security XUserId
func (g *GoogleAuth) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	userId, err := user.CurrentId(r.Context())
	if err != nil {
		log.Error("unable to retrieve current user: ", err)
		http.Error(w, "unable to retrieve current user", http.StatusInternalServerError)
		return
	}

	stateNonce := uuid.New().String()
	finalUrl := r.URL.Query().Get("finalUrl")

	if err := g.repo.StartAuth(r.Context(), userId, stateNonce); err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to handle Google authentication", "")
		return
	}

	log.Tracef("Redirecting to Google auth URL with nonce: %s", stateNonce)
	u := g.oauthConfig.AuthCodeURL(finalUrl+"|"+stateNonce, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	rest.WriteJSON(w, http.StatusOK, googleAuthRedirect{RedirectUrl: u})
}

// OAuthCallback is called by Google, the user is identified by the state nonce only.
func (g *GoogleAuth) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	state := r.FormValue("state")

	finalUrl, nonce, found := strings.Cut(state, "|")
	if !found || nonce == "" {
		rest.WriteError(w, http.StatusBadRequest, "Invalid state", "")
		return
	}

	token, err := g.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		log.Errorf("unable to exchange code for token: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	if err := g.repo.StoreToken(r.Context(), nonce, token); err != nil {
		if errors.Is(err, ErrUnknownNonce) {
			log.Warnf("Google auth callback with unknown nonce: %s", nonce)
		}
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}
	log.Debug("Successfully stored Google auth token for nonce: ", nonce)
	http.Redirect(w, r, finalUrl+"?success=true", http.StatusFound)
}

// OAuthLogout godoc
// @Summary Disconnect Google Calendar
// @Tags Google
// @Success 204 "No Content"
// @Router /api/integrations/google/auth/logout [delete]
// @Security XUserId
func (g *GoogleAuth) OAuthLogout(w http.ResponseWriter, r *http.Request) {
	userId, err := user.CurrentId(r.Context())
	if err != nil {
		log.Error("unable to retrieve current user: ", err)
		http.Error(w, "unable to retrieve current user", http.StatusInternalServerError)
		return
	}
	if err := g.repo.DeleteAuth(r.Context(), userId); err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to handle Google authentication", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (g *GoogleAuth) Client(ctx context.Context, userId int) (*http.Client, error) {
	token, err := g.repo.GetToken(ctx, userId)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	if token == nil {
		return nil, nil
	}
	// refreshes outlive the request that triggered them
	return g.oauthConfig.Client(context.Background(), token), nil
}
