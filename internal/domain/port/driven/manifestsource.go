package driven

import "context"

// LocalManifestSource reads the manifest version from the local checkout.
type LocalManifestSource interface {
	ReadVersion(ctx context.Context) (string, error)
}

// RemoteManifestSource fetches the manifest version from a branch of a
// repository on the hosting service, without a local checkout.
type RemoteManifestSource interface {
	FetchVersion(ctx context.Context, owner, repo, branch string) (string, error)
}
