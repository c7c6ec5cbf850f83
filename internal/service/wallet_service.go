package service

import (
	"log"

	"github.com/google/uuid"

	"github.com/saheminvest/saheminvest-backend/internal/apperrors"
	"github.com/saheminvest/saheminvest-backend/internal/model"
	"github.com/saheminvest/saheminvest-backend/internal/repository"
	"github.com/saheminvest/saheminvest-backend/internal/secrets"
)

// WalletService manages investor wallets and their payout accounts.
type WalletService struct {
	walletRepo *repository.WalletRepository
	payoutRepo *repository.PayoutRepository
	userRepo   *repository.UserRepository
	vault      *secrets.Vault
}

// NewWalletService creates a new WalletService with the provided
// dependencies.
func NewWalletService(
	walletRepo *repository.WalletRepository,
	payoutRepo *repository.PayoutRepository,
	userRepo *repository.UserRepository,
	vault *secrets.Vault,
) *WalletService {
	return &WalletService{
		walletRepo: walletRepo,
		payoutRepo: payoutRepo,
		userRepo:   userRepo,
		vault:      vault,
	}
}

// WalletStatement is a wallet together with its full transaction history.
type WalletStatement struct {
	Wallet       *model.Wallet             `json:"wallet"`
	Transactions []model.WalletTransaction `json:"transactions"`
}

// GetStatement retrieves an investor's wallet and its ledger.
func (s *WalletService) GetStatement(investorID string) (*WalletStatement, error) {
	wallet, err := s.walletRepo.GetByInvestor(investorID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.walletRepo.ListTransactions(wallet.ID)
	if err != nil {
		return nil, err
	}

	return &WalletStatement{Wallet: wallet, Transactions: transactions}, nil
}

// ReconcileResult reports the outcome of recomputing one wallet balance.
type ReconcileResult struct {
	Wallet    *model.Wallet `json:"wallet"`
	Corrected bool          `json:"corrected"`
}

// Reconcile recomputes an investor's wallet balance from its transaction
// log and rewrites the materialized balance when they disagree.
func (s *WalletService) Reconcile(investorID string) (*ReconcileResult, error) {
	wallet, err := s.walletRepo.GetByInvestor(investorID)
	if err != nil {
		return nil, err
	}

	computed, err := s.walletRepo.SumTransactions(wallet.ID)
	if err != nil {
		return nil, err
	}

	if computed.Equal(wallet.Balance) {
		return &ReconcileResult{Wallet: wallet, Corrected: false}, nil
	}

	log.Printf("Wallet %s balance drifted: stored %s, ledger %s", wallet.ID, wallet.Balance.String(), computed.String())

	if err := s.walletRepo.SetBalance(wallet.ID, computed); err != nil {
		return nil, err
	}

	wallet.Balance = computed
	return &ReconcileResult{Wallet: wallet, Corrected: true}, nil
}

// ReconcileAll sweeps every wallet and fixes drifted balances. It is run
// nightly by the scheduler and returns how many wallets were corrected.
func (s *WalletService) ReconcileAll() (int, error) {
	ids, err := s.walletRepo.ListWalletIDs()
	if err != nil {
		return 0, err
	}

	corrected := 0
	for _, id := range ids {
		changed, err := s.reconcileWallet(id)
		if err != nil {
			log.Printf("Failed to reconcile wallet %s: %v", id, err)
			continue
		}
		if changed {
			corrected++
		}
	}

	return corrected, nil
}

func (s *WalletService) reconcileWallet(walletID string) (bool, error) {
	computed, err := s.walletRepo.SumTransactions(walletID)
	if err != nil {
		return false, err
	}

	current, err := s.walletRepo.GetByID(walletID)
	if err != nil {
		return false, err
	}

	if computed.Equal(current.Balance) {
		return false, nil
	}

	log.Printf("Wallet %s balance drifted: stored %s, ledger %s", walletID, current.Balance.String(), computed.String())
	if err := s.walletRepo.SetBalance(walletID, computed); err != nil {
		return false, err
	}
	return true, nil
}

// SavePayoutAccount encrypts and stores where an investor's withdrawals
// should be sent. Requires the encryption key to be configured.
func (s *WalletService) SavePayoutAccount(investorID, bankName, iban string) (*model.PayoutAccount, error) {
	if !s.vault.Enabled() {
		return nil, secrets.ErrNoKey
	}

	if _, err := s.userRepo.GetByID(investorID); err != nil {
		return nil, err
	}

	ciphertext, err := s.vault.Encrypt(iban)
	if err != nil {
		return nil, err
	}

	err = s.payoutRepo.Upsert(&repository.EncryptedPayoutAccount{
		ID:            uuid.New().String(),
		InvestorID:    investorID,
		BankName:      bankName,
		IBANEncrypted: ciphertext,
	})
	if err != nil {
		return nil, err
	}

	return s.GetPayoutAccount(investorID)
}

// GetPayoutAccount retrieves an investor's payout account with the IBAN
// masked for display.
func (s *WalletService) GetPayoutAccount(investorID string) (*model.PayoutAccount, error) {
	stored, err := s.payoutRepo.GetByInvestor(investorID)
	if err != nil {
		return nil, err
	}

	iban, err := s.vault.Decrypt(stored.IBANEncrypted)
	if err != nil {
		if err == secrets.ErrNoKey || err == secrets.ErrDecryptFailed {
			return nil, apperrors.ErrDataInconsistency
		}
		return nil, err
	}

	return &model.PayoutAccount{
		ID:         stored.ID,
		InvestorID: stored.InvestorID,
		BankName:   stored.BankName,
		IBAN:       secrets.MaskAccountNumber(iban),
		UpdatedAt:  stored.UpdatedAt,
	}, nil
}
