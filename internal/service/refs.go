package service

import "context"

type ownedExister interface {
	Exists(ctx context.Context, userID, id string) (bool, error)
}

// refChecker rejects clientId/projectId references the caller does not own.
type refChecker struct {
	clients  ownedExister
	projects ownedExister
}

func (r refChecker) check(ctx context.Context, userID string, clientID, projectID *string) error {
	if clientID != nil && *clientID != "" {
		ok, err := r.clients.Exists(ctx, userID, *clientID)
		if err != nil {
			return err
		}
		if !ok {
			return invalid("clientId", "does not reference one of your clients")
		}
	}
	if projectID != nil && *projectID != "" {
		ok, err := r.projects.Exists(ctx, userID, *projectID)
		if err != nil {
			return err
		}
		if !ok {
			return invalid("projectId", "does not reference one of your projects")
		}
	}
	return nil
}

// optionalRef turns an empty reference on create into no reference.
func optionalRef(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
