package service

import "context"

// OAuthAccountDirectory lists the currently valid Spotify accounts.
type OAuthAccountDirectory interface {
	ListAllAccounts(ctx context.Context) ([]SpotifyAccount, error)
}

// PatchCredentials replaces the credential value of every Spotify source whose
// username matches a directory record with that record's refresh token. The
// credential type and every other field are left untouched. It returns the
// number of sources patched.
func PatchCredentials(doc *AccountDocument, accounts []SpotifyAccount) int {
	if doc == nil || len(accounts) == 0 {
		return 0
	}
	byUser := make(map[string]string, len(accounts))
	for _, a := range accounts {
		byUser[a.SpotifyUserID] = a.RefreshToken
	}

	patched := 0
	for _, src := range doc.Sources() {
		if src.ProviderID() != SpotifyProviderID {
			continue
		}
		cred := src.Credential()
		if cred == nil {
			continue
		}
		token, ok := byUser[src.Username()]
		if !ok {
			continue
		}
		cred.SetValue(token)
		patched++
	}
	return patched
}
