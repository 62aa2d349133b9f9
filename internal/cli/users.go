package cli

import "context"

// Users lists registered accounts with their creation dates.
func (a *App) Users(ctx context.Context) error {
	users := a.registrar.Users(ctx)
	if len(users) == 0 {
		a.say("users.none", nil)
		return nil
	}

	a.say("users.title", nil)
	for i, u := range users {
		created := u.CreatedAt
		if created == "" {
			created = "N/A"
		}
		a.say("users.item", map[string]any{"Index": i + 1, "Username": u.Username, "CreatedAt": created})
	}
	return nil
}
