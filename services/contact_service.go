package services

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"homes-http-service/config"
	"homes-http-service/models"
)

// ImportSource 通讯录来源，封闭枚举。
// 新增来源时扩展枚举和parse的switch，不做字符串键的动态分发。
type ImportSource int

const (
	// ImportSourceUnknown 未知来源
	ImportSourceUnknown ImportSource = iota
	// ImportSourceGmail Gmail通讯录CSV导出
	ImportSourceGmail
	// ImportSourceYahoo Yahoo通讯录CSV导出
	ImportSourceYahoo
	// ImportSourceOutlook Outlook通讯录XLSX导出
	ImportSourceOutlook
)

// ParseImportSource 解析来源参数
func ParseImportSource(s string) (ImportSource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gmail":
		return ImportSourceGmail, nil
	case "yahoo":
		return ImportSourceYahoo, nil
	case "outlook":
		return ImportSourceOutlook, nil
	default:
		return ImportSourceUnknown, ErrImportSourceInvalid
	}
}

// String 返回来源名称
func (k ImportSource) String() string {
	switch k {
	case ImportSourceGmail:
		return "gmail"
	case ImportSourceYahoo:
		return "yahoo"
	case ImportSourceOutlook:
		return "outlook"
	default:
		return "unknown"
	}
}

// importedContact 解析出的单条联系人
type importedContact struct {
	Name  string
	Email string
}

// InterfaceContactService defines the contact service interface
type InterfaceContactService interface {
	Import(ownerID uint, source ImportSource, file io.Reader) (string, int, error)
	ListByOwner(ownerID uint, p models.PaginationQuery) ([]models.Contact, int64, error)
}

// ContactService 提供联系人批量导入与查询
type ContactService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewContactService 创建一个新的联系人服务
func NewContactService(db *gorm.DB, cfg *config.Config) InterfaceContactService {
	return &ContactService{
		DB:     db,
		Config: cfg,
	}
}

// 1 Import 解析通讯录文件并批量写入，返回批次ID与条数。
// 没有邮箱的行被跳过；归属无条件取ownerID。
func (s *ContactService) Import(ownerID uint, source ImportSource, file io.Reader) (string, int, error) {
	parsed, err := source.parse(file)
	if err != nil {
		return "", 0, err
	}

	batchID := uuid.NewString()
	contacts := make([]models.Contact, 0, len(parsed))
	for _, entry := range parsed {
		if entry.Email == "" {
			continue
		}
		contacts = append(contacts, models.Contact{
			UserID:        ownerID,
			Name:          entry.Name,
			Email:         entry.Email,
			ImportBatchID: batchID,
		})
	}

	if len(contacts) == 0 {
		return batchID, 0, nil
	}
	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(contacts, 100).Error
	}); err != nil {
		return "", 0, err
	}

	config.Info("导入联系人完成: user=%d source=%s batch=%s count=%d", ownerID, source, batchID, len(contacts))
	return batchID, len(contacts), nil
}

// 2 ListByOwner 获取某用户的联系人，按创建时间倒序分页
func (s *ContactService) ListByOwner(ownerID uint, p models.PaginationQuery) ([]models.Contact, int64, error) {
	var contacts []models.Contact
	var total int64
	base := s.DB.Model(&models.Contact{}).Where("user_id = ?", ownerID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := base.Order("created_at DESC").Offset(p.Offset()).Limit(p.PerPage).Find(&contacts).Error; err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

// parse 按来源解析通讯录文件
func (k ImportSource) parse(file io.Reader) ([]importedContact, error) {
	switch k {
	case ImportSourceGmail, ImportSourceYahoo:
		return parseContactCSV(file)
	case ImportSourceOutlook:
		return parseContactXLSX(file)
	default:
		return nil, ErrImportSourceInvalid
	}
}

// parseContactCSV 解析CSV通讯录导出。首行为表头，按列名找姓名和邮箱列。
func parseContactCSV(file io.Reader) ([]importedContact, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // 各家导出的列数不一致

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return contactsFromRows(rows), nil
}

// parseContactXLSX 解析XLSX通讯录导出，取第一个工作表
func parseContactXLSX(file io.Reader) ([]importedContact, error) {
	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return contactsFromRows(rows), nil
}

// contactsFromRows 从表格行提取联系人。表头中含name的列作姓名，含email/e-mail的列作邮箱；
// 找不到表头时退回第0列姓名、第1列邮箱。
func contactsFromRows(rows [][]string) []importedContact {
	if len(rows) == 0 {
		return nil
	}

	nameCol, emailCol := 0, 1
	headerFound := false
	for i, header := range rows[0] {
		h := strings.ToLower(strings.TrimSpace(header))
		if strings.Contains(h, "name") && !headerFound {
			nameCol = i
			headerFound = true
		}
		if strings.Contains(h, "e-mail") || strings.Contains(h, "email") {
			emailCol = i
		}
	}

	start := 0
	if headerFound {
		start = 1
	}

	contacts := make([]importedContact, 0, len(rows))
	for _, row := range rows[start:] {
		var name, email string
		if nameCol < len(row) {
			name = strings.TrimSpace(row[nameCol])
		}
		if emailCol < len(row) {
			email = strings.TrimSpace(row[emailCol])
		}
		if name == "" && email == "" {
			continue
		}
		contacts = append(contacts, importedContact{Name: name, Email: email})
	}
	return contacts
}
