package authenticator

import "github.com/hashicorp/go-hclog"

// SURFconext identifiers
const (
	SurfConextID   = "surfconext"
	SurfConextName = "SURFconext"
)

// NewSurfConextProvider creates the SURFconext federation provider. The
// well-known URL defaults to the issuer's discovery document. Email account
// linking follows cfg; config.FromEnv enables it for the federation.
func NewSurfConextProvider(cfg OIDCConfig, logger hclog.Logger) (*OIDCProvider, error) {
	cfg.ID = SurfConextID
	cfg.Name = SurfConextName
	if cfg.WellKnown == "" {
		cfg.WellKnown = WellKnownURL(cfg.Issuer)
	}
	return NewOIDCProvider(cfg, logger)
}
