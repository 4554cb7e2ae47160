package ports

type EditKind string

const (
	EditPaint  EditKind = "paint"
	EditStamp  EditKind = "stamp"
	EditFill   EditKind = "fill"
	EditCancel EditKind = "cancel"
	EditUndo   EditKind = "undo"
	EditRedo   EditKind = "redo"
)

type EditMetrics interface {
	RecordEdit(kind EditKind, cells int)
	RecordNoop(kind EditKind)
	RecordStrokeCommitted()
}
