package importer

// Stats counts the outcome of one import run. Every source record lands in
// exactly one bucket: created, skipped or failed.
type Stats struct {
	UsersCreated      int
	UsersSkipped      int
	UsersFailed       int
	FilesCreated      int
	FilesFailed       int
	FilesDeleted      int
	CategoriesCreated int
	TagsCreated       int
	PostsCreated      int
	PostsSkipped      int
	PostsFailed       int
	CommentsCreated   int
	CommentsSkipped   int
	CommentsFailed    int
	LinksCreated      int
	ItemsDeleted      int
	CommentsDeleted   int
}
