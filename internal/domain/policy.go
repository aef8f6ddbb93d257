package domain

// Ownership is the only authorization rule in the system: a routine and its
// attached activities may be mutated by the routine's creator and nobody else.
// Every mutating path funnels through these two checks so the rule cannot
// drift between entry points.

// CanModify reports whether the requester may mutate a resource owned by ownerID.
func CanModify(requesterID, ownerID string) bool {
	return requesterID != "" && requesterID == ownerID
}

// CanView reports whether the viewer may read the routine. Public routines are
// visible to anyone, private ones only to their creator.
func CanView(viewerID string, routine Routine) bool {
	return routine.IsPublic || CanModify(viewerID, routine.CreatorID)
}
