package sim

// CommandKind tags the two command shapes units and bases accept.
type CommandKind int

const (
	CommandMove CommandKind = iota
	CommandAbility
)

func (k CommandKind) String() string {
	switch k {
	case CommandMove:
		return "move"
	case CommandAbility:
		return "ability"
	default:
		return "unknown"
	}
}

// CommandNode is one queued order. Move nodes carry a target position;
// ability nodes carry the cast origin and aim direction. Vec2 fields are
// values, so enqueueing inherently clones them; a node never aliases
// mutable vectors held by input state.
type CommandNode struct {
	Kind      CommandKind
	Position  Vec2 // move target
	Origin    Vec2 // ability cast point
	Direction Vec2 // ability aim, unit length not required
}

// MoveCommand builds a move node.
func MoveCommand(target Vec2) CommandNode {
	return CommandNode{Kind: CommandMove, Position: target}
}

// AbilityCommand builds an ability node.
func AbilityCommand(origin, direction Vec2) CommandNode {
	return CommandNode{Kind: CommandAbility, Origin: origin, Direction: direction}
}

// maxQueueLen bounds every command queue. Enqueueing onto a full queue is
// a silent no-op, never an error.
const maxQueueLen = 16

// CommandQueue is a strictly FIFO, bounded list of pending orders.
type CommandQueue struct {
	nodes []CommandNode
}

// Enqueue appends a node. Returns false (and drops the node) when full.
func (q *CommandQueue) Enqueue(n CommandNode) bool {
	if len(q.nodes) >= maxQueueLen {
		return false
	}
	q.nodes = append(q.nodes, n)
	return true
}

// Head returns the active node without consuming it.
func (q *CommandQueue) Head() (CommandNode, bool) {
	if len(q.nodes) == 0 {
		return CommandNode{}, false
	}
	return q.nodes[0], true
}

// Pop discards the active node.
func (q *CommandQueue) Pop() {
	if len(q.nodes) == 0 {
		return
	}
	copy(q.nodes, q.nodes[1:])
	q.nodes = q.nodes[:len(q.nodes)-1]
}

// Clear empties the queue. Used on unit death.
func (q *CommandQueue) Clear() {
	q.nodes = q.nodes[:0]
}

// Len returns the number of queued nodes, including the active head.
func (q *CommandQueue) Len() int { return len(q.nodes) }

// PendingMoves counts move nodes queued behind the active head. This is
// the forward-planning count the promotion bonus rewards; ability nodes
// never count.
func (q *CommandQueue) PendingMoves() int {
	n := 0
	for i := 1; i < len(q.nodes); i++ {
		if q.nodes[i].Kind == CommandMove {
			n++
		}
	}
	return n
}

// Nodes returns the queue contents for read-only inspection (renderer
// waypoint lines, tests).
func (q *CommandQueue) Nodes() []CommandNode {
	out := make([]CommandNode, len(q.nodes))
	copy(out, q.nodes)
	return out
}
