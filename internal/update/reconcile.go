package update

// LocalVersion is the outcome of looking up the installed version:
// either a token found on disk or no local installation at all.
type LocalVersion struct {
	Token     string
	Candidate LocalCandidate
	found     bool
}

// Found returns a LocalVersion for a token parsed from candidate.
func Found(token string, candidate LocalCandidate) LocalVersion {
	return LocalVersion{Token: token, Candidate: candidate, found: true}
}

// NotFound returns the LocalVersion for an empty download directory.
func NotFound() LocalVersion {
	return LocalVersion{}
}

// IsFound reports whether a local installation was found.
func (l LocalVersion) IsFound() bool {
	return l.found
}

// String returns the token, or "none" when nothing is installed.
func (l LocalVersion) String() string {
	if !l.found {
		return "none"
	}
	return l.Token
}

// Outcome is the result kind of reconciliation.
type Outcome int

const (
	// UpToDate means the local token equals the remote token.
	UpToDate Outcome = iota
	// UpdateAvailable means the remote asset must be downloaded.
	UpdateAvailable
)

// String returns the string representation of Outcome.
func (o Outcome) String() string {
	switch o {
	case UpToDate:
		return "up_to_date"
	case UpdateAvailable:
		return "update_available"
	default:
		return "unknown"
	}
}

// Decision is what the pipeline does next. Asset is set only for UpdateAvailable.
type Decision struct {
	Outcome Outcome
	Asset   Asset
}

// Reconcile compares tokens by exact string equality; there is no version ordering
// and no normalization. A missing local installation always needs an update.
func Reconcile(remoteToken string, local LocalVersion, asset Asset) Decision {
	if local.IsFound() && local.Token == remoteToken {
		return Decision{Outcome: UpToDate}
	}
	return Decision{Outcome: UpdateAvailable, Asset: asset}
}
