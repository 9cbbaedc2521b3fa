package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errStackNameRequired = errors.New("stack name is required")
	errStackNameInvalid  = errors.New("stack name must be 1-32 lowercase alphanumeric characters or hyphens, starting and ending with alphanumeric")
	errCIDRInvalid       = errors.New("invalid CIDR format (expected: x.x.x.x/xx)")
	errPortInvalid       = errors.New("port must be between 1 and 65535")
	errDomainRequired    = errors.New("domain is required")
	errHostnameInvalid   = errors.New("hostname must be the domain or a subdomain of it")
	errAccountIDRequired = errors.New("account ID is required")
	errRepoInvalid       = errors.New("repository must be in owner/name form")
	errBucketRequired    = errors.New("bucket name is required")
)
