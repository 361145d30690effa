package studyclient

// View is the top-level screen a session should render.
type View string

const (
	ViewLoading  View = "loading"
	ViewUpload   View = "upload"
	ViewPlanning View = "planning"
	ViewStudying View = "studying"
)

// SelectView maps a session stage and the local plan-load state onto a
// view. The mapping is total: every input lands on exactly one view.
// A PLANNING session whose plan has not arrived yet renders the loading
// placeholder so the planning screen never starts without its data.
func SelectView(stage string, planLoaded bool) View {
	switch stage {
	case "UPLOADING":
		return ViewUpload
	case "PLANNING":
		if !planLoaded {
			return ViewLoading
		}
		return ViewPlanning
	case "STUDYING":
		return ViewStudying
	default:
		return ViewLoading
	}
}
