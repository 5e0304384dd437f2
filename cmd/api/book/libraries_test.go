package book_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/shelf-service/cmd/api/book"
	bookmock "github.com/shelf-service/cmd/api/book/mocks"
	gomock "go.uber.org/mock/gomock"
)

func TestAddTitle(t *testing.T) {
	lib := book.Library{ID: 2, Name: "Sala lettura", Floor: 1, Books: []string{"X"}}

	t.Run("appends a trimmed title", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, nil, notificationsTimeout, nil)

		mockRepo.EXPECT().GetLibrary(gomock.Any(), 2).Return(lib, nil)
		mockRepo.EXPECT().AppendLibraryTitle(gomock.Any(), 2, "Y").Return(book.Library{ID: 2, Books: []string{"X", "Y"}}, nil)

		updated, err := mS.AddTitle(ctx, book.TitleRequest{LibraryID: "2", Title: "  Y "})
		is.NoErr(err)
		is.Equal(updated.Books, []string{"X", "Y"})
	})

	t.Run("a title already on the list is a conflict", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, nil, notificationsTimeout, nil)

		mockRepo.EXPECT().GetLibrary(gomock.Any(), 2).Return(lib, nil)

		_, err := mS.AddTitle(ctx, book.TitleRequest{LibraryID: "2", Title: "X"})
		is.True(errors.Is(err, book.ErrResponseTitleAlreadyPresent))
	})

	t.Run("the store detecting a concurrent append is a conflict too", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, nil, notificationsTimeout, nil)

		mockRepo.EXPECT().GetLibrary(gomock.Any(), 2).Return(lib, nil)
		mockRepo.EXPECT().AppendLibraryTitle(gomock.Any(), 2, "Y").Return(book.Library{}, book.ErrResponseTitleAlreadyPresent)

		_, err := mS.AddTitle(ctx, book.TitleRequest{LibraryID: "2", Title: "Y"})
		is.True(errors.Is(err, book.ErrResponseTitleAlreadyPresent))
	})

	t.Run("invalid input never reaches the store", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, nil, notificationsTimeout, nil)

		_, err := mS.AddTitle(ctx, book.TitleRequest{LibraryID: "due", Title: "Y"})
		is.True(errors.Is(err, book.ErrResponseLibraryIDInvalid))

		_, err = mS.AddTitle(ctx, book.TitleRequest{LibraryID: "2", Title: "   "})
		is.True(errors.Is(err, book.ErrResponseTitleBlank))
	})

	t.Run("unknown library is not found", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, nil, notificationsTimeout, nil)

		mockRepo.EXPECT().GetLibrary(gomock.Any(), 9).Return(book.Library{}, book.ErrResponseLibraryNotFound)

		_, err := mS.AddTitle(ctx, book.TitleRequest{LibraryID: "9", Title: "Y"})
		is.True(errors.Is(err, book.ErrResponseLibraryNotFound))
	})

	t.Run("notifies the shelved title", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mockNtfy := bookmock.NewMockNotifier(ctrl)
		mS := book.NewService(mockRepo, mockNtfy, notificationsTimeout, nil)

		delivered := make(chan struct{})
		mockRepo.EXPECT().GetLibrary(gomock.Any(), 2).Return(lib, nil)
		mockRepo.EXPECT().AppendLibraryTitle(gomock.Any(), 2, "Y").Return(book.Library{ID: 2, Name: "Sala lettura", Books: []string{"X", "Y"}}, nil)
		mockNtfy.EXPECT().TitleShelved(gomock.Any(), "Sala lettura", "Y").DoAndReturn(func(ctx context.Context, libraryName, title string) error {
			close(delivered)
			return errors.New("ntfy down") // logged, never returned to the caller
		})

		_, err := mS.AddTitle(ctx, book.TitleRequest{LibraryID: "2", Title: "Y"})
		is.NoErr(err)
		<-delivered
	})
}

func TestRemoveTitle(t *testing.T) {
	t.Run("removes a title", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, nil, notificationsTimeout, nil)

		mockRepo.EXPECT().RemoveLibraryTitle(gomock.Any(), 3, "X").Return(book.Library{ID: 3, Books: []string{}}, nil)

		removed, err := mS.RemoveTitle(ctx, book.TitleRequest{LibraryID: "3", Title: "X "})
		is.NoErr(err)
		is.Equal(removed, book.TitleRemoved{LibraryID: 3, Title: "X"})
	})

	t.Run("missing title and missing library are different errors", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, nil, notificationsTimeout, nil)

		mockRepo.EXPECT().RemoveLibraryTitle(gomock.Any(), 3, "Nonexistent").Return(book.Library{}, book.ErrResponseTitleNotFound)
		mockRepo.EXPECT().RemoveLibraryTitle(gomock.Any(), 4, "Nonexistent").Return(book.Library{}, book.ErrResponseLibraryNotFound)

		_, err := mS.RemoveTitle(ctx, book.TitleRequest{LibraryID: "3", Title: "Nonexistent"})
		is.True(errors.Is(err, book.ErrResponseTitleNotFound))

		_, err = mS.RemoveTitle(ctx, book.TitleRequest{LibraryID: "4", Title: "Nonexistent"})
		is.True(errors.Is(err, book.ErrResponseLibraryNotFound))
	})
}

func TestRenameTitle(t *testing.T) {
	lib := book.Library{ID: 2, Books: []string{"X", "Z"}}

	t.Run("renames in place", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, nil, notificationsTimeout, nil)

		mockRepo.EXPECT().GetLibrary(gomock.Any(), 2).Return(lib, nil)
		mockRepo.EXPECT().ReplaceLibraryTitle(gomock.Any(), 2, "X", "Y").Return(book.Library{ID: 2, Books: []string{"Y", "Z"}}, nil)

		updated, err := mS.RenameTitle(ctx, book.RenameTitleRequest{LibraryID: "2", OldTitle: "X", NewTitle: "Y"})
		is.NoErr(err)
		is.Equal(updated.Books, []string{"Y", "Z"})
	})

	t.Run("old title absent is not found", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, nil, notificationsTimeout, nil)

		mockRepo.EXPECT().GetLibrary(gomock.Any(), 2).Return(lib, nil)

		_, err := mS.RenameTitle(ctx, book.RenameTitleRequest{LibraryID: "2", OldTitle: "Q", NewTitle: "Y"})
		is.True(errors.Is(err, book.ErrResponseTitleNotFound))
	})

	t.Run("new title already present is a conflict", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, nil, notificationsTimeout, nil)

		mockRepo.EXPECT().GetLibrary(gomock.Any(), 2).Return(lib, nil)

		_, err := mS.RenameTitle(ctx, book.RenameTitleRequest{LibraryID: "2", OldTitle: "X", NewTitle: "Z"})
		is.True(errors.Is(err, book.ErrResponseTitleAlreadyPresent))
	})

	t.Run("renaming a title to itself changes nothing", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, nil, notificationsTimeout, nil)

		mockRepo.EXPECT().GetLibrary(gomock.Any(), 2).Return(lib, nil)

		updated, err := mS.RenameTitle(ctx, book.RenameTitleRequest{LibraryID: "2", OldTitle: "X", NewTitle: " X "})
		is.NoErr(err)
		is.Equal(updated.Books, lib.Books)
	})

	t.Run("title removed between check and update is reported as not modified", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, nil, notificationsTimeout, nil)

		mockRepo.EXPECT().GetLibrary(gomock.Any(), 2).Return(lib, nil)
		mockRepo.EXPECT().ReplaceLibraryTitle(gomock.Any(), 2, "X", "Y").Return(book.Library{}, book.ErrResponseTitleNotFound)

		_, err := mS.RenameTitle(ctx, book.RenameTitleRequest{LibraryID: "2", OldTitle: "X", NewTitle: "Y"})
		is.True(errors.Is(err, book.ErrResponseTitleNotModified))
	})

	t.Run("blank titles are rejected", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, nil, notificationsTimeout, nil)

		_, err := mS.RenameTitle(ctx, book.RenameTitleRequest{LibraryID: "2", OldTitle: "X", NewTitle: ""})
		is.True(errors.Is(err, book.ErrResponseRenameBlankFields))
	})
}

func TestListLibraries(t *testing.T) {
	is := is.New(t)
	ctrl := gomock.NewController(t)
	mockRepo := bookmock.NewMockRepository(ctrl)
	mS := book.NewService(mockRepo, nil, notificationsTimeout, nil)

	mockRepo.EXPECT().ListLibraries(gomock.Any()).Return([]book.Library{{ID: 1}, {ID: 2, Books: []string{"X"}}}, nil)

	libraries, err := mS.ListLibraries(ctx)
	is.NoErr(err)
	is.Equal(libraries[0].Books, []string{}) // absent list becomes empty
	is.Equal(libraries[1].Books, []string{"X"})
}
