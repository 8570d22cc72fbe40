// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ktopics

// Broker is the minimal reference to a cluster node this core needs: just
// enough identity to compare "is this still the partition's leader" and to
// look a node id up by number. Shaped like franz-go's
// kmsg.MetadataResponseBroker, but this core never decodes a real
// metadata response - that is the wire codec's job, explicitly out of
// scope - so no import is taken for three fields.
type Broker struct {
	NodeID int32
	Host   string
	Port   int32
}

// BrokerIndex is the client-wide broker pool index: a lookup-by-node-id
// table. It carries no lock of its own - every method requires the caller
// to already hold Client.mu, the same lock that guards the Topic Registry
// (spec §5: "Client reader-writer lock: guards the Topic Registry and
// broker pool index"). It is identity/lookup only; connecting to a broker
// is out of scope.
type BrokerIndex struct {
	byNode map[int32]*Broker
}

// newBrokerIndex returns an empty index.
func newBrokerIndex() *BrokerIndex {
	return &BrokerIndex{byNode: make(map[int32]*Broker)}
}

// findByNodeID looks up a broker by node id. Callers must hold Client.mu
// (at least read).
func (bi *BrokerIndex) findByNodeID(id int32) (*Broker, bool) {
	b, ok := bi.byNode[id]
	return b, ok
}

// put registers or replaces the broker reference for its node id. Callers
// must hold Client.mu (write).
func (bi *BrokerIndex) put(b *Broker) {
	bi.byNode[b.NodeID] = b
}

// remove drops a broker reference from the index. Callers must hold
// Client.mu (write).
func (bi *BrokerIndex) remove(id int32) {
	delete(bi.byNode, id)
}
