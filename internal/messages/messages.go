package messages

// Category определяет категорию пользовательского сообщения.
// Категория задаёт ключ сессии, под которым сообщение доживает
// ровно до следующего отображения страницы.
type Category string

const (
	CategoryValidation   Category = "validationUserMessage"
	CategoryLogin        Category = "loginUserMessage"
	CategoryRegistration Category = "registrationUserMessage"
	CategoryVerification Category = "verificationUserMessage"
)

// Сообщения валидации (логин и регистрация).
const (
	HasEmptyFields        = "Пожалуйста, заполните все поля."
	InvalidUsernameFormat = "Имя пользователя должно содержать от 4 до 8 символов: только латинские буквы и цифры."
	InvalidPasswordFormat = "Пароль должен содержать от 4 до 8 символов, включая минимум одну заглавную букву, одну строчную, одну цифру и один символ из набора !@#$%^&*."
	InvalidEmailFormat    = "Некорректный формат email."
)

// Сообщения логина.
const (
	FailedAuthentication = "Неверное имя пользователя или пароль."
	DeletedAccount       = "Этот аккаунт деактивирован. Если это ошибка, обратитесь в поддержку."
	AccountActivated     = "Аккаунт активирован! Теперь вы можете войти."
	UserNotLoggedIn      = "Пожалуйста, войдите, чтобы пользоваться приложением."
)

// Сообщения регистрации.
const (
	UnavailableUsernameOrEmail = "Имя пользователя или email уже заняты."
)

// Сообщения верификации.
const (
	UserNotActivated        = "Код подтверждения отправлен на ваш email. Введите его ниже, чтобы активировать аккаунт."
	PreviouslyNotActivated  = "Аккаунт ещё не подтверждён. Проверьте email: код уже был отправлен. Введите его ниже."
	InvalidVerificationCode = "Неверный код подтверждения. Попробуйте ещё раз или запросите новый код."
	NewVerificationCodeSent = "Новый код подтверждения отправлен на email."
	ErrorSendingCode        = "Не удалось отправить код подтверждения. Попробуйте ещё раз."
	ErrorSendingNewCode     = "Не удалось отправить новый код подтверждения. Попробуйте ещё раз."
)

// Сообщения выхода и удаления аккаунта.
const (
	LogoutSuccessful          = "Вы успешно вышли из системы."
	AccountDeletionSuccessful = "Аккаунт успешно удалён."
)

// categoryByMessage сопоставляет каждому сообщению его категорию.
// Используется маршрутизатором при установке flash-сообщения.
var categoryByMessage = map[string]Category{
	HasEmptyFields:        CategoryValidation,
	InvalidUsernameFormat: CategoryValidation,
	InvalidPasswordFormat: CategoryValidation,

	FailedAuthentication: CategoryLogin,
	DeletedAccount:       CategoryLogin,
	AccountActivated:     CategoryLogin,
	UserNotLoggedIn:      CategoryLogin,

	InvalidEmailFormat:         CategoryRegistration,
	UnavailableUsernameOrEmail: CategoryRegistration,

	UserNotActivated:        CategoryVerification,
	PreviouslyNotActivated:  CategoryVerification,
	InvalidVerificationCode: CategoryVerification,
	NewVerificationCodeSent: CategoryVerification,
	ErrorSendingCode:        CategoryVerification,
	ErrorSendingNewCode:     CategoryVerification,
}

// Categories возвращает все категории сообщений.
func Categories() []Category {
	return []Category{
		CategoryValidation,
		CategoryLogin,
		CategoryRegistration,
		CategoryVerification,
	}
}

// CategoryOf возвращает категорию сообщения и признак того,
// что сообщение известно.
func CategoryOf(message string) (Category, bool) {
	c, ok := categoryByMessage[message]
	return c, ok
}

// IsLogoutMessage проверяет, что значение параметра logoutMessage
// входит в белый список допустимых сообщений. Всё остальное,
// пришедшее из query-строки, игнорируется.
func IsLogoutMessage(value string) bool {
	switch value {
	case LogoutSuccessful, UserNotLoggedIn, AccountDeletionSuccessful:
		return true
	}
	return false
}
