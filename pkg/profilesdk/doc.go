/*
Package profilesdk is a client for the Kotoed denizen service.

It covers denizen creation and lookup, and the three profile operations a
profile editor needs:

	client := profilesdk.NewClient("http://localhost:8080")

	info, err := client.ReadProfile(ctx, id)
	err = client.UpdateProfile(ctx, id, profilesdk.ProfileUpdateRequest{Email: &email})
	err = client.ChangePassword(ctx, id, profilesdk.PasswordChangeRequest{
		OldPassword: "old",
		NewPassword: "new",
	})

# Errors

Every non-2xx response is returned as an *APIError. The predefined errors
compare by code, so callers branch with errors.Is:

	if errors.Is(err, profilesdk.ErrIncorrectOldPassword) {
		// ask for the old password again
	}

Transport failures (connection refused, timeouts) are returned wrapped and do
not match any *APIError.
*/
package profilesdk
