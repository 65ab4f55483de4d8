package tui

// onItemsChanged patches the realized window for a change in the item
// source. Inserts and removes adjust the window in place so that elements
// which stay realized are neither recycled nor rebound; a reset recycles
// everything. Each change requests a new measure.
func (p *Presenter[T]) onItemsChanged(c Change[T]) {
	switch c.Type {
	case ChangeInsert:
		p.itemsInserted(c.Index, c.Count)
	case ChangeRemove:
		p.itemsRemoved(c.Index, c.Count)
	case ChangeReplace:
		p.itemsReplaced(c.Index, c.Count)
	case ChangeReset:
		p.itemsReset()
	}
	logger.Debug("presenter items changed",
		"type", c.Type,
		"index", c.Index,
		"count", c.Count,
		"first", p.realized.FirstIndex(),
		"last", p.realized.LastIndex())
	p.invalidateMeasure()
}

func (p *Presenter[T]) itemsInserted(index, count int) {
	p.realized.ItemsInserted(index, count, p.updateElementIndex)
	if p.anchorElement != nil && index <= p.anchorIndex {
		p.anchorIndex += count
		p.binder.UpdateIndex(p.anchorElement, p.anchorIndex)
	}
}

func (p *Presenter[T]) itemsRemoved(index, count int) {
	p.realized.ItemsRemoved(index, count, p.updateElementIndex, p.recycleElement)
	if p.anchorElement == nil || index > p.anchorIndex {
		return
	}
	if index+count > p.anchorIndex {
		p.recycleAnchor()
		return
	}
	p.anchorIndex -= count
	p.binder.UpdateIndex(p.anchorElement, p.anchorIndex)
}

// itemsReplaced recycles the elements showing replaced items. Nothing moves,
// so no other element sees an index update.
func (p *Presenter[T]) itemsReplaced(index, count int) {
	p.realized.ItemsReplaced(index, count, p.recycleElement)
	if p.anchorElement != nil && index <= p.anchorIndex && p.anchorIndex < index+count {
		p.recycleAnchor()
	}
}

func (p *Presenter[T]) itemsReset() {
	p.realized.RecycleAllElements(p.recycleElement)
	if p.anchorElement != nil {
		p.recycleAnchor()
	}
	p.extentU = 0
}
