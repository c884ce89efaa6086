package extract

import (
	"context"
	"fmt"
	"os"

	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/archive"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/digest"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/sidecar"
)

// FingerprintName is the sidecar record name holding a file's content digest
const FingerprintName = "fingerprint"

// Decision is the outcome of checking one archive member against its
// destination file
type Decision struct {
	// Extract is true when the member must be written out
	Extract bool

	// Digest is the rendered digest of the member content. It is
	// always populated, so a Decision carries everything needed to
	// record the fingerprint after extraction.
	Digest string

	// Reason explains the decision in human terms
	Reason string
}

// Decider determines whether an archive member needs extraction.
// A member is skipped only when a fingerprint is recorded on the
// destination file, the fingerprint matches the member's content
// digest, and the destination file length equals the member's declared
// size. Anything less forces extraction.
type Decider struct {
	engine *digest.Engine
	store  sidecar.Store
}

// NewDecider creates a new decider
func NewDecider(engine *digest.Engine, store sidecar.Store) *Decider {
	return &Decider{
		engine: engine,
		store:  store,
	}
}

// Decide digests the member content and compares it against the state
// of destPath. The member stream is read in full on every call, so the
// digest is available to record regardless of the outcome.
func (d *Decider) Decide(ctx context.Context, entry archive.Entry, destPath string) (*Decision, error) {
	reader, err := entry.Open()
	if err != nil {
		return nil, err
	}

	entryDigest, err := d.engine.Sum(ctx, reader)
	closeErr := reader.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to digest %s: %w", entry.Name(), err)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close reader for %s: %w", entry.Name(), closeErr)
	}

	stored, ok, err := d.store.Read(ctx, destPath, FingerprintName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Decision{Extract: true, Digest: entryDigest, Reason: "no fingerprint recorded"}, nil
	}
	if stored != entryDigest {
		return &Decision{Extract: true, Digest: entryDigest, Reason: "content digest changed"}, nil
	}

	info, err := os.Stat(destPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Decision{Extract: true, Digest: entryDigest, Reason: "destination file missing"}, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", destPath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("destination %s is a directory, expected a file", destPath)
	}
	if info.Size() != entry.Size() {
		return &Decision{Extract: true, Digest: entryDigest, Reason: "destination size differs"}, nil
	}

	return &Decision{Extract: false, Digest: entryDigest, Reason: "content unchanged"}, nil
}
