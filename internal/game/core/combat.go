package core

// AttackResult describes what an attack hit
type AttackResult struct {
	// Target is the unit that took damage, nil when nothing was hit
	Target *Unit
	// At is the cell the target stood in
	At Coordinate
	// Dealt is the actual HP removed, capped by the target's remaining HP
	Dealt  int
	Killed bool
}

// Walk moves the unit to (x,y). It fails without any state change when the
// destination is out of bounds or occupied, or the unit is not on the board.
func (b *Board) Walk(u *Unit, x, y int) bool {
	from, ok := u.Position()
	if !ok || !b.HasCoords(x, y) {
		return false
	}
	to := b.Idx(x, y)
	if !b.cells[to].IsEmpty() {
		return false
	}
	b.cells[b.Idx(from.X, from.Y)].occupant = nil
	b.cells[to].occupant = u
	u.setPosition(NewCoordinate(x, y))
	return true
}

// Attack fires along delta for up to the unit's attack range. The first
// occupied or out-of-bounds cell stops the shot, so any unit in the line
// blocks it. Only a living enemy at the stop takes damage; a killed target
// is removed from the board. Crediting points and living counts belongs to
// the caller.
func (b *Board) Attack(u *Unit, delta Coordinate) AttackResult {
	pos, ok := u.Position()
	if !ok {
		return AttackResult{}
	}

	for i := 0; i < u.AttackRange; i++ {
		pos = pos.Add(delta)
		if !b.HasCoords(pos.X, pos.Y) {
			break
		}
		target, occupied := b.cells[b.Idx(pos.X, pos.Y)].Occupant()
		if !occupied {
			continue
		}
		if !target.IsAlive() || !target.IsEnemyOf(u) {
			break
		}
		prevHP := target.HP
		killed := target.Damage(u.AttackDamage)
		if killed {
			b.Remove(target)
		}
		return AttackResult{Target: target, At: pos, Dealt: prevHP - target.HP, Killed: killed}
	}

	return AttackResult{}
}
