package postgres

// UserModel é o model GORM para usuários
type UserModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Username string `gorm:"type:varchar(255);not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// PostModel é o model GORM para postagens
// ImageKey guarda a chave opaca no object storage; NULL = sem imagem
type PostModel struct {
	ID       int64   `gorm:"primaryKey;autoIncrement"`
	Title    string  `gorm:"type:varchar(255);not null"`
	Content  string  `gorm:"type:varchar(255);not null"`
	ImageKey *string `gorm:"type:varchar(500)"`
	UserID   int64   `gorm:"not null;index"`

	// FK no banco: postagem não existe sem usuário dono
	User UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}

func (PostModel) TableName() string {
	return "posts"
}
