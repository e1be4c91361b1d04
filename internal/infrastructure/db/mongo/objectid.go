package mongo

import "go.mongodb.org/mongo-driver/bson/primitive"

// parseID converts a hex id into an ObjectID. Malformed ids cannot match any
// document, so callers report them as not found.
func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
