package dto

// Client-facing messages. The mobile client shows these verbatim.
const (
	MsgMissingFields       = "모든 필드를 입력해주세요."
	MsgInvalidEmail        = "올바른 이메일 형식이 아닙니다."
	MsgInvalidUsername     = "아이디에는 @를 사용할 수 없습니다."
	MsgUsernameTooLong     = "아이디는 150자 이하여야 합니다."
	MsgEmailTooLong        = "이메일은 254자 이하여야 합니다."
	MsgNicknameTooLong     = "닉네임은 30자 이하여야 합니다."
	MsgPasswordTooShort    = "비밀번호는 8자 이상이어야 합니다."
	MsgPasswordTooLong     = "비밀번호는 128자 이하여야 합니다."
	MsgUsernameTaken       = "이미 사용 중인 아이디입니다."
	MsgEmailTaken          = "이미 등록된 이메일입니다."
	MsgNicknameTaken       = "이미 사용 중인 닉네임입니다."
	MsgSignupComplete      = "회원가입이 완료되었습니다."
	MsgMissingCredentials  = "아이디와 비밀번호를 입력해주세요."
	MsgUnknownUser         = "존재하지 않는 사용자입니다."
	MsgWrongPassword       = "비밀번호가 틀렸습니다."
	MsgResetFieldsRequired = "이메일과 새 비밀번호를 모두 입력해주세요."
	MsgUserNotFound        = "해당 사용자를 찾을 수 없습니다."
	MsgPasswordChanged     = "비밀번호가 성공적으로 변경되었습니다."
	MsgResetDisabled       = "비밀번호 재설정이 비활성화되어 있습니다."
	MsgPasswordFields      = "현재 비밀번호와 새 비밀번호를 모두 입력해주세요."
	MsgNicknameRequired    = "닉네임을 입력해주세요."
	MsgForbidden           = "다른 사용자의 정보는 변경할 수 없습니다."

	MsgBoardNotFound    = "보드를 찾을 수 없습니다."
	MsgMemoNotFound     = "메모를 찾을 수 없습니다."
	MsgTitleRequired    = "제목을 입력해주세요."
	MsgTitleTooLong     = "제목은 100자 이하여야 합니다."
	MsgCategoryTooLong  = "카테고리는 100자 이하여야 합니다."
	MsgBoardRequired    = "보드를 지정해주세요."
	MsgContentRequired  = "내용을 입력해주세요."
	MsgNotImplemented   = "아직 지원하지 않는 기능입니다."
	MsgInvalidCursor    = "잘못된 페이지 커서입니다."
	MsgInvalidJSON      = "잘못된 요청 형식입니다."
	MsgPayloadTooLarge  = "요청 본문이 너무 큽니다."
	MsgInternalError    = "서버 오류가 발생했습니다."
	MsgNotFound         = "요청한 리소스를 찾을 수 없습니다."
	MsgMethodNotAllowed = "허용되지 않는 메서드입니다."
	MsgUnauthorized     = "인증이 필요합니다."
)
