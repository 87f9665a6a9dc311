package site

import "errors"

var (
	ErrNotFound             = errors.New("site not found")
	ErrForbidden            = errors.New("site belongs to another user")
	ErrGenerationInProgress = errors.New("site generation already in progress")
	ErrRevisionLimit        = errors.New("revision limit reached")
	ErrSubdomainTaken       = errors.New("subdomain is already taken")
	ErrInvalidSubdomain     = errors.New("subdomain must be 3-63 lowercase letters, digits or hyphens")
	ErrReservedSubdomain    = errors.New("subdomain is reserved")
	ErrNoCV                 = errors.New("site has no cv data")
	ErrNoPlan               = errors.New("site has no design plan, generate it first")
	ErrNotGenerated         = errors.New("site has no generated content")
	ErrNotPublished         = errors.New("site is not published")
)
