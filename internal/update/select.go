package update

import (
	"fmt"
	"strings"
)

// SelectAsset returns the release asset whose name ends with suffix.
// When several assets match, the last one in release order wins.
func SelectAsset(release *ReleaseInfo, suffix string) (Asset, error) {
	var (
		chosen Asset
		found  bool
	)
	for _, asset := range release.Assets {
		if strings.HasSuffix(asset.Name, suffix) {
			chosen = asset
			found = true
		}
	}

	if !found {
		return Asset{}, fmt.Errorf("release %s has no *%s asset: %w", release.TagName, suffix, ErrNoMatchingAsset)
	}
	return chosen, nil
}
