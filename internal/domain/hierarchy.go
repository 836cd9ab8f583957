package domain

import (
	"errors"
	"fmt"
)

// StaffRole enumerates positions on the firm's seniority ladder.
type StaffRole string

const (
	StaffRoleParalegal       StaffRole = "Paralegal"
	StaffRoleJuniorAssociate StaffRole = "Junior Associate"
	StaffRoleSeniorAssociate StaffRole = "Senior Associate"
	StaffRoleJuniorPartner   StaffRole = "Junior Partner"
	StaffRoleSeniorPartner   StaffRole = "Senior Partner"
	StaffRoleManagingPartner StaffRole = "Managing Partner"
)

// ErrUnknownRole is returned by ladder lookups when the role is not one of
// the six defined positions. Callers holding untrusted input should check
// IsValidRole first.
var ErrUnknownRole = errors.New("unknown staff role")

// promotionAuthorityLevel is the minimum level (Senior Partner) required to
// promote or demote other staff.
const promotionAuthorityLevel = 5

type roleRank struct {
	level    int
	maxCount int
}

// roleLadder is the firm's rank table. Levels are unique and contiguous
// from 1 to 6; headcount caps are fixed configuration.
var roleLadder = map[StaffRole]roleRank{
	StaffRoleParalegal:       {level: 1, maxCount: 10},
	StaffRoleJuniorAssociate: {level: 2, maxCount: 10},
	StaffRoleSeniorAssociate: {level: 3, maxCount: 10},
	StaffRoleJuniorPartner:   {level: 4, maxCount: 5},
	StaffRoleSeniorPartner:   {level: 5, maxCount: 3},
	StaffRoleManagingPartner: {level: 6, maxCount: 1},
}

// roleOrder lists roles in declaration (ascending level) order.
var roleOrder = []StaffRole{
	StaffRoleParalegal,
	StaffRoleJuniorAssociate,
	StaffRoleSeniorAssociate,
	StaffRoleJuniorPartner,
	StaffRoleSeniorPartner,
	StaffRoleManagingPartner,
}

// IsValidRole reports whether candidate is one of the six known roles.
func IsValidRole(candidate StaffRole) bool {
	_, ok := roleLadder[candidate]
	return ok
}

// RoleLevel returns the rank level (1-6) for a role.
func RoleLevel(role StaffRole) (int, error) {
	rank, ok := roleLadder[role]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return rank.level, nil
}

// MaxHeadcount returns the fixed cap of concurrently active staff for a role.
func MaxHeadcount(role StaffRole) (int, error) {
	rank, ok := roleLadder[role]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return rank.maxCount, nil
}

// CanPromote reports whether an actor holding actorRole may promote someone
// currently holding targetRole: the actor must be Senior Partner or above
// and strictly outrank the target. It does not determine the destination
// rank; see NextPromotion.
func CanPromote(actorRole, targetRole StaffRole) (bool, error) {
	actor, ok := roleLadder[actorRole]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRole, actorRole)
	}
	target, ok := roleLadder[targetRole]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRole, targetRole)
	}
	return actor.level >= promotionAuthorityLevel && target.level < actor.level, nil
}

// CanDemote reports whether an actor may demote someone holding targetRole.
// The predicate is intentionally identical to CanPromote.
func CanDemote(actorRole, targetRole StaffRole) (bool, error) {
	return CanPromote(actorRole, targetRole)
}

// NextPromotion returns the role one level above the given role. ok is
// false when the role is already Managing Partner.
func NextPromotion(role StaffRole) (next StaffRole, ok bool, err error) {
	rank, found := roleLadder[role]
	if !found {
		return "", false, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	if rank.level >= len(roleOrder) {
		return "", false, nil
	}
	return roleOrder[rank.level], true, nil
}

// PreviousDemotion returns the role one level below the given role. ok is
// false when the role is already Paralegal.
func PreviousDemotion(role StaffRole) (prev StaffRole, ok bool, err error) {
	rank, found := roleLadder[role]
	if !found {
		return "", false, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	if rank.level <= 1 {
		return "", false, nil
	}
	return roleOrder[rank.level-2], true, nil
}

// AllRoles returns the six roles in ascending level order.
func AllRoles() []StaffRole {
	out := make([]StaffRole, len(roleOrder))
	copy(out, roleOrder)
	return out
}

// AllRolesByLevelDescending returns the six roles from Managing Partner
// down to Paralegal.
func AllRolesByLevelDescending() []StaffRole {
	out := make([]StaffRole, len(roleOrder))
	for i, role := range roleOrder {
		out[len(roleOrder)-1-i] = role
	}
	return out
}
