package entities

// Table names follow the catalog schema created by the first iterations of the
// service, so an existing library.db keeps working.
const (
	TableUser       = "User"
	TableBook       = "Book"
	TableAuthor     = "Author"
	TableUserBook   = "User_Book"
	TableBookAuthor = "Book_Author"
)

type User struct {
	ID        uint    `gorm:"column:id_user;primaryKey" json:"id_user"`
	FirstName *string `gorm:"column:first_name;size:50" json:"first_name"`
	LastName  *string `gorm:"column:last_name;size:50" json:"last_name"`
	Email     string  `gorm:"column:email;size:255;not null;uniqueIndex:idx_user_email" json:"email"`
	BirthDate *string `gorm:"column:birth_date;size:10" json:"birth_date"` // YYYY-MM-DD
	Password  Secret  `gorm:"column:password;not null" json:"password"`   // bcrypt hash
}

func (User) TableName() string {
	return TableUser
}

type Book struct {
	ID         uint       `gorm:"column:id_book;primaryKey" json:"id_book"`
	Title      string     `gorm:"column:title;size:100;not null" json:"title"`
	ReadingAge ReadingAge `gorm:"column:reading_age;type:text;not null;default:'undefined'" json:"reading_age"`
	Pages      int        `gorm:"column:pages;not null" json:"pages"`
	Language   Language   `gorm:"column:language;type:text;not null;default:'undefined'" json:"language"`
	Publisher  *string    `gorm:"column:publisher;size:50" json:"publisher"`
	DateAdd    string     `gorm:"column:date_add;size:10;not null" json:"date_add"`
	DateUpdate string     `gorm:"column:date_update;size:10;not null" json:"date_update"`
}

func (Book) TableName() string {
	return TableBook
}

type Author struct {
	ID          uint    `gorm:"column:id_author;primaryKey" json:"id_author"`
	Name        string  `gorm:"column:name;size:124;not null" json:"name"`
	Nationality *string `gorm:"column:nationality;size:100" json:"nationality"`
	Genre       *string `gorm:"column:genre;size:100" json:"genre"`
	Birthdate   *string `gorm:"column:birthdate;size:10" json:"birthdate"`
}

func (Author) TableName() string {
	return TableAuthor
}

// UserBook places a book in a user's library.
type UserBook struct {
	ID     uint `gorm:"column:id_user_book;primaryKey" json:"id_user_book"`
	UserID uint `gorm:"column:fk_id_user;not null;uniqueIndex:idx_user_book_pair" json:"id_user"`
	BookID uint `gorm:"column:fk_id_book;not null;uniqueIndex:idx_user_book_pair;index" json:"id_book"`
	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Book   Book `gorm:"foreignKey:BookID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (UserBook) TableName() string {
	return TableUserBook
}

// BookAuthor credits an author on a book.
type BookAuthor struct {
	ID       uint   `gorm:"column:id_book_author;primaryKey" json:"id_book_author"`
	AuthorID uint   `gorm:"column:fk_id_author;not null;uniqueIndex:idx_book_author_pair;index" json:"id_author"`
	BookID   uint   `gorm:"column:fk_id_book;not null;uniqueIndex:idx_book_author_pair" json:"id_book"`
	Author   Author `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Book     Book   `gorm:"foreignKey:BookID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (BookAuthor) TableName() string {
	return TableBookAuthor
}
